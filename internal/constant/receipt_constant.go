package constant

// Cache namespaces. The namespace is part of the physical key, so entries
// never collide across namespaces and each one is independently clearable.
const (
	CacheNamespaceOCR        = "ocr"
	CacheNamespaceExtraction = "extraction"
	CacheNamespacePattern    = "pattern"
	CacheNamespaceComplete   = "complete"
)

// Pipeline stage names, used for stage-tagged errors and reasoning labels.
const (
	StageOCR        = "ocr"
	StageExtraction = "extraction"
	StagePattern    = "pattern"
	StageClassify   = "classify"
)

// UnknownLocation is the sentinel for receipts whose location could not be
// extracted.
const UnknownLocation = "unknown"

// ExpenseCategories is the account category list offered to the inference
// call, mirroring the bookkeeping chart used by the expense forms.
var ExpenseCategories = []string{
	"복리후생비",
	"여비교통비",
	"접대비",
	"소모품비",
	"통신비",
	"교육훈련비",
	"차량유지비",
	"지급수수료",
	"도서인쇄비",
	"기타",
}
