package entity

import "time"

// Quote is a painting job estimate request. Area is in square metres,
// prices are NZD.
type Quote struct {
	Id             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	Address        string    `bson:"address" json:"address"`
	PaintType      string    `bson:"paintType" json:"paintType"`
	Area           float64   `bson:"area" json:"area"`
	Windows        int       `bson:"windows" json:"windows"`
	Doors          int       `bson:"doors" json:"doors"`
	Frames         int       `bson:"frames" json:"frames"`
	Features       int       `bson:"features" json:"features"`
	Message        string    `bson:"message" json:"message"`
	EstimatedPrice float64   `bson:"estimatedPrice" json:"estimatedPrice"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

type QuoteRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	PaintType string  `json:"paintType"`
	Area      float64 `json:"area"`
	Windows   int     `json:"windows"`
	Doors     int     `json:"doors"`
	Frames    int     `json:"frames"`
	Features  int     `json:"features"`
	Message   string  `json:"message"`
}
