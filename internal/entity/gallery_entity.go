package entity

import "time"

type GalleryImage struct {
	Id         string    `bson:"_id" json:"id"`
	Image      string    `bson:"image" json:"image"`
	Caption    string    `bson:"caption" json:"caption"`
	URL        string    `bson:"-" json:"url,omitempty"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
