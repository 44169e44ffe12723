package item

// Item is a category of recyclable material accepted by collection points.
type Item struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"-"`
	ImageURL string `json:"image_url"`
}
