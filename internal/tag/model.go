package tag

// ContentProduct is the content type recorded for tags on products.
const ContentProduct = "product"

type Tag struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type AttachInput struct {
	Label *string `json:"label"`
}
