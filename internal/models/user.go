package models

// ListType names one of the two restaurant lists a user keeps.
type ListType string

const (
	ListFavourites ListType = "favourites"
	ListWantToTry  ListType = "wantToTry"
)

// Valid reports whether lt is one of the two known lists.
func (lt ListType) Valid() bool {
	return lt == ListFavourites || lt == ListWantToTry
}

// DefaultTagNames are the category tags every new account starts with.
var DefaultTagNames = []string{
	"Sushi",
	"Italian",
	"Indian",
	"Pizza",
	"Mexican",
	"Vegetarian",
	"Dessert",
	"Fast Food",
	"Brunch",
	"Chinese",
	"Thai",
	"Café",
	"Fine Dining",
	"Healthy",
}

type User struct {
	ID       string `bson:"_id" json:"_id"`
	Username string `bson:"username" json:"username" validate:"required"`
	Email    string `bson:"email" json:"email" validate:"required,email"`
	// Stored verbatim. This is the insecure plaintext baseline carried over
	// from the original application; a salted hash is the real target.
	Password string `bson:"password,omitempty" json:"-"`
	// Favourites and WantToTry hold denormalized restaurant snapshots. The
	// canonical records in the restaurants collection stay authoritative;
	// these arrays are a read optimization and can drift if a multi-step
	// write stops partway.
	Favourites []Restaurant `bson:"favourites" json:"favourites"`
	WantToTry  []Restaurant `bson:"wantToTry" json:"wantToTry"`
	// Tags holds tag ids (set semantics), never embedded tag records.
	Tags []string `bson:"tags" json:"tags"`
}

// Snapshot returns a copy of the user safe to hand to callers.
func (u User) Snapshot() User {
	u.Password = ""
	return u
}

// List returns the denormalized array for the given list.
func (u User) List(lt ListType) []Restaurant {
	if lt == ListWantToTry {
		return u.WantToTry
	}
	return u.Favourites
}
