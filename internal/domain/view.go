package domain

import (
	"fmt"
	"strings"
)

// ViewKind enumerates the dashboard's fixed menu.
type ViewKind int

const (
	ViewOverview ViewKind = iota + 1
	ViewBestSelling
	ViewNonMoving
	ViewRejectedGoods
	ViewOnlineSales
	ViewUniqueProducts
	ViewTopProducts
)

var viewSlugs = map[ViewKind]string{
	ViewOverview:       "overview",
	ViewBestSelling:    "best-selling",
	ViewNonMoving:      "non-moving",
	ViewRejectedGoods:  "rejected-goods",
	ViewOnlineSales:    "online-sales",
	ViewUniqueProducts: "unique-products",
	ViewTopProducts:    "top-products",
}

var viewTitles = map[ViewKind]string{
	ViewOverview:       "Overview",
	ViewBestSelling:    "Best-Selling Items",
	ViewNonMoving:      "Non-Moving Products",
	ViewRejectedGoods:  "Rejected Goods and Returns",
	ViewOnlineSales:    "Online Sales Prioritization",
	ViewUniqueProducts: "Unique Products",
	ViewTopProducts:    "Top 20% Products",
}

// Menu returns every view in navigation order.
func Menu() []ViewKind {
	return []ViewKind{
		ViewOverview,
		ViewBestSelling,
		ViewNonMoving,
		ViewRejectedGoods,
		ViewOnlineSales,
		ViewUniqueProducts,
		ViewTopProducts,
	}
}

func (v ViewKind) String() string {
	if s, ok := viewSlugs[v]; ok {
		return s
	}
	return fmt.Sprintf("view(%d)", int(v))
}

func (v ViewKind) Title() string { return viewTitles[v] }

// ParseViewKind accepts a slug or a menu title, case-insensitively.
func ParseViewKind(s string) (ViewKind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, v := range Menu() {
		if key == viewSlugs[v] || key == strings.ToLower(viewTitles[v]) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

func (v ViewKind) MarshalText() ([]byte, error) {
	if _, ok := viewSlugs[v]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(v))
	}
	return []byte(v.String()), nil
}

func (v *ViewKind) UnmarshalText(text []byte) error {
	parsed, err := ParseViewKind(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MenuEntry is a navigation item.
type MenuEntry struct {
	View  ViewKind `json:"view"`
	Title string   `json:"title"`
}
