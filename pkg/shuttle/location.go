package shuttle

type Location struct {
	Type        string    `json:"-" groups:"basic" bson:"type"`
	Coordinates []float64 `json:"coordinates" groups:"basic" bson:"coordinates"`
}

func NewPointLocation(longitude float64, latitude float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}
