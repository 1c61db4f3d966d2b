package constant

const (
	// ExtractionPrompt asks the model to pull the raw fields out of OCR text.
	// The response must be a JSON object carrying exactly these keys; anything
	// less is treated as an invalid response upstream.
	ExtractionPrompt = `You are a data extraction API for Korean receipts.
Extract the following from the raw OCR text below and respond ONLY with a JSON object:
{
    "amount": <total amount as a number or a string like "₩4,500">,
    "raw_datetime": "<the date/time text exactly as printed, or empty string>",
    "usage_location": "<store or merchant name, brand name preferred, branch suffix removed>"
}

Rules:
- amount: the final paid total. Prefer lines labelled 합계, 총액, 결제금액.
- raw_datetime: prefer 거래일시 / 결제일시 lines; keep the original formatting.
- usage_location: brand name only (e.g. "스타벅스 강남점" -> "스타벅스").
- Respond with the JSON object and nothing else.

--- RAW RECEIPT TEXT ---
%s
--- END RAW RECEIPT TEXT ---`

	// ClassificationPrompt asks the model for the final category and
	// description when local heuristics were not decisive. The pattern summary
	// section may be empty.
	ClassificationPrompt = `You are an expense classification API for Korean corporate bookkeeping.

Receipt data:
- amount: %d KRW
- used at: %s (%s)
- location: %s

Historical usage for this location:
%s

Choose the account category from this list only: %s

Respond ONLY with a JSON object:
{
    "category": "<account category from the list>",
    "description": "<short usage description reflecting the time context, e.g. 야근식대, 점심식대>"
}`
)
