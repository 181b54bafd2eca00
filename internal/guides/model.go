package guides

import "go.mongodb.org/mongo-driver/bson/primitive"

// Collection is the document-store collection holding guide applications.
const Collection = "applications"

// Application is a tourist's request to be promoted to guide. Repeated
// applications by the same email are allowed; each record sees exactly one
// terminal outcome (accept or reject), and both destroy the record.
type Application struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ApplicantEmail string             `bson:"applicantEmail" json:"applicantEmail"`
	ApplicantName  string             `bson:"applicantName,omitempty" json:"applicantName,omitempty"`
	Title          string             `bson:"title,omitempty" json:"title,omitempty"`
	WhyGuide       string             `bson:"whyGuide,omitempty" json:"whyGuide,omitempty"`
	CVLink         string             `bson:"cvLink,omitempty" json:"cvLink,omitempty"`
	Photo          string             `bson:"photo,omitempty" json:"photo,omitempty"`
}
