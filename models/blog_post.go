package models

// MaxBodyLength bounds the size of a post body accepted by the form layer.
const MaxBodyLength = 20000

// BlogPost represents a published post. Date is a human-readable label
// fixed at creation time; edits never touch it.
type BlogPost struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"type:text;uniqueIndex;not null"`
	Subtitle string `json:"subtitle" gorm:"type:text;not null"`
	Date     string `json:"date" gorm:"type:text;not null"`
	Body     string `json:"body" gorm:"type:text;not null"`
	ImgURL   string `json:"imgUrl" gorm:"type:text;not null"`
	AuthorID uint   `json:"authorId" gorm:"not null;index"`
	Author   User   `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}
