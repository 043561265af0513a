package models

// Entry represents one logged catch.
//
// Free-form measurement fields (length, weight) are strings because the
// log accepts values like "45", "0.7" or "-" when nobody measured.
type Entry struct {
	ID          string `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Fish        string `json:"fish" bson:"fish" gorm:"type:varchar(10)"`
	Date        string `json:"date" bson:"date" gorm:"type:varchar(10)"`
	Length      string `json:"length" bson:"length" gorm:"type:varchar(20)"`
	Weight      string `json:"weight" bson:"weight" gorm:"type:varchar(20)"`
	Lure        string `json:"lure" bson:"lure" gorm:"type:varchar(100)"`
	Place       string `json:"place" bson:"place" gorm:"type:varchar(100)"`
	Coordinates string `json:"coordinates" bson:"coordinates" gorm:"type:varchar(30)"`
	Time        string `json:"time" bson:"time" gorm:"type:varchar(20)"`
	Person      string `json:"person" bson:"person" gorm:"type:varchar(10)"`
}
