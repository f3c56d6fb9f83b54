package config

// Viewport is the fixed map view the dashboard opens with
type Viewport struct {
	Name        string    `json:"name"`
	Center      []float64 `json:"center"`
	ZoomLevel   int       `json:"zoom_level"`
	TileURL     string    `json:"tile_url"`
	Attribution string    `json:"attribution"`
}

// DefaultViewport centers the map on Austin, TX
var DefaultViewport = Viewport{
	Name:        "austin",
	Center:      []float64{30.2672, -97.7431},
	ZoomLevel:   10,
	TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: "© OpenStreetMap contributors",
}
