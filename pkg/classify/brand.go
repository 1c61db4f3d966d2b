package classify

import "strings"

// BrandDefault is a sector-level fallback classification, applied when no
// historical pattern is strong enough but the merchant name matches a known
// brand or sector keyword.
type BrandDefault struct {
	Sector      string
	Category    string
	Description string
}

type sectorBook struct {
	sector      string
	category    string
	description string
	keywords    []string
}

// Sector keyword book for common Korean merchants. Order matters: the first
// sector whose keyword appears in the merchant name wins, so the more
// specific sectors come first.
var sectorBooks = []sectorBook{
	{
		sector:      "cafe",
		category:    "복리후생비",
		description: "커피",
		keywords:    []string{"스타벅스", "투썸", "이디야", "할리스", "메가커피", "빈스", "카페", "커피"},
	},
	{
		sector:      "gas_station",
		category:    "차량유지비",
		description: "주유비",
		keywords:    []string{"주유소", "GS칼텍스", "SK에너지", "S-Oil", "LPG", "셀프주유"},
	},
	{
		sector:      "convenience",
		category:    "소모품비",
		description: "소모품 구매",
		keywords:    []string{"GS25", "CU", "세븐일레븐", "미니스톱", "편의점"},
	},
	{
		sector:      "mart",
		category:    "소모품비",
		description: "생필품 구매",
		keywords:    []string{"이마트", "롯데마트", "홈플러스", "슈퍼마켓", "마트", "슈퍼"},
	},
	{
		sector:      "restaurant",
		category:    "복리후생비",
		description: "식대",
		keywords:    []string{"맥도날드", "버거킹", "롯데리아", "KFC", "치킨", "피자", "식당"},
	},
	{
		sector:      "transport",
		category:    "여비교통비",
		description: "교통비",
		keywords:    []string{"택시", "버스", "지하철", "톨게이트", "주차", "교통카드"},
	},
	{
		sector:      "lodging",
		category:    "여비교통비",
		description: "숙박비",
		keywords:    []string{"숙박", "호텔", "모텔"},
	},
	{
		sector:      "medical",
		category:    "복리후생비",
		description: "의료비",
		keywords:    []string{"약국", "병원", "의원", "한의원", "치과", "안과", "내과"},
	},
	{
		sector:      "education",
		category:    "교육훈련비",
		description: "교육비",
		keywords:    []string{"학원", "서점", "도서관", "문구점", "교육"},
	},
}

// LookupBrand matches a normalized merchant name against the sector book.
// Returns false when no sector keyword matches.
func LookupBrand(location string) (BrandDefault, bool) {
	if location == "" {
		return BrandDefault{}, false
	}
	for _, book := range sectorBooks {
		for _, kw := range book.keywords {
			if strings.Contains(location, kw) {
				return BrandDefault{
					Sector:      book.sector,
					Category:    book.category,
					Description: book.description,
				}, true
			}
		}
	}
	return BrandDefault{}, false
}
