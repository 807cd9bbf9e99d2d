// munui/boards/boards.go
package boards

import "munui/models"

// registry is the fixed set of topic boards, in display order. The set is
// compile-time data; boards are not user-creatable.
var registry = []models.Board{
	{Slug: "computer-quote", Name: "컴퓨터 견적 문의"},
	{Slug: "code-consult", Name: "코드 의뢰 상담"},
	{Slug: "ppt-request", Name: "PPT 관련 의뢰"},
}

// List returns the boards in their fixed order.
func List() []models.Board {
	out := make([]models.Board, len(registry))
	copy(out, registry)
	return out
}

// IsValid reports whether slug names a registered board.
func IsValid(slug string) bool {
	for _, b := range registry {
		if b.Slug == slug {
			return true
		}
	}
	return false
}
