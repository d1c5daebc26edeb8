package help

import "logidash/frontend/shared/html"

// Topic describes one dashboard tab on the help page.
type Topic struct {
	Title string
	Href  string
	Body  string
}

type PageData struct {
	Layout     html.LayoutData
	IsAdmin    bool
	Tenant     string
	ExpiryDays int
	Topics     []Topic
}
