package models

// Vehicle describes the car an officer operates.
type Vehicle struct {
	Make         string `bson:"make" json:"make"`
	Model        string `bson:"model" json:"model"`
	Color        string `bson:"color" json:"color"`
	LicensePlate string `bson:"licensePlate" json:"licensePlate"`
}

// Officer is a close-protection officer available for assignment.
type Officer struct {
	ID         string       `bson:"id" json:"id"`
	Name       string       `bson:"name" json:"name"`
	Phone      string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Rating     float64      `bson:"rating" json:"rating"`
	SIALicence string       `bson:"siaLicence,omitempty" json:"siaLicence,omitempty"`
	Vehicle    Vehicle      `bson:"vehicle" json:"vehicle"`
	Location   *Coordinates `bson:"location,omitempty" json:"location,omitempty"`
}

// OfficerDTO is an officer decorated with matching results for clients.
type OfficerDTO struct {
	Officer
	Preferred bool    `json:"preferred"`
	Proximity float64 `json:"proximity"` // metres from the pickup point
}
