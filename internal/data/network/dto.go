package network

// InfoResponse is the body returned by the info endpoint.
// Exactly one of Header or Error is expected to be set.
type InfoResponse struct {
	Header *HeaderDTO `json:"header,omitempty"`
	Items  []ItemDTO  `json:"items,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// HeaderDTO is the wire representation of the dataset header.
type HeaderDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

// ItemDTO is the wire representation of one item.
type ItemDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}
