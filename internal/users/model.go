package users

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user record may carry. A missing role field means the user is a
// plain tourist-equivalent: neither admin nor guide.
const (
	RoleTourist = "tourist"
	RoleGuide   = "guide"
	RoleAdmin   = "admin"
)

// Collection is the document-store collection holding user records.
const Collection = "users"

// User is a registered member of the marketplace, keyed by email.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email   string             `bson:"email" json:"email"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Address string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio     string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Photo   string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role    string             `bson:"role,omitempty" json:"role,omitempty"`
}

// Classification is the public admin/guide lookup result.
type Classification struct {
	IsAdmin bool `json:"admin"`
	IsGuide bool `json:"guide"`
}

// Profile carries the mutable profile fields for an update.
type Profile struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio     string `bson:"bio,omitempty" json:"bio,omitempty"`
	Photo   string `bson:"photo,omitempty" json:"photo,omitempty"`
}
