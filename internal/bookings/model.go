package bookings

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking lifecycle states. A booking starts pending, moves to in-review when
// payment is attached, and ends accepted or rejected.
const (
	StatusPending  = "pending"
	StatusInReview = "in-review"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Collection is the document-store collection holding bookings.
const Collection = "bookings"

// Booking is a tourist's reservation request against a package or guide.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TouristEmail string             `bson:"touristEmail" json:"touristEmail"`
	TouristName  string             `bson:"touristName,omitempty" json:"touristName,omitempty"`
	PackageID    string             `bson:"packageId,omitempty" json:"packageId,omitempty"`
	GuideEmail   string             `bson:"guideEmail,omitempty" json:"guideEmail,omitempty"`
	TourDate     string             `bson:"tourDate,omitempty" json:"tourDate,omitempty"`
	Price        float64            `bson:"price,omitempty" json:"price,omitempty"`
	Status       string             `bson:"status" json:"status"`

	// Payment fields, set only once payment is attached.
	TransactionID string  `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentDate   string  `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	PaymentPrice  float64 `bson:"paymentPrice,omitempty" json:"paymentPrice,omitempty"`
	PaymentEmail  string  `bson:"paymentEmail,omitempty" json:"paymentEmail,omitempty"`
}

// Payment carries the fields attached when a booking is paid.
type Payment struct {
	TransactionID string  `json:"transactionId"`
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	Email         string  `json:"email"`
}
