package model

// Membership tier labels.
const (
	MembershipRegular  = "عادي"
	MembershipSilver   = "فضي"
	MembershipGold     = "ذهبي"
	MembershipPlatinum = "بلاتيني"
	MembershipVIP      = "VIP"
)

// Customer is a loyalty/billing entity. Balance is only ever mutated through
// the ledger helper, never overwritten with an absolute value.
type Customer struct {
	ID            int64    `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"size:256;not null" json:"name"`
	Phone         string   `gorm:"size:32" json:"phone"`
	TotalSpent    float64  `json:"totalSpent"`
	Visits        int      `json:"visits"`
	Membership    string   `gorm:"size:32" json:"membership"`
	JoinDate      string   `gorm:"size:10" json:"joinDate"`
	LastVisit     string   `gorm:"size:10" json:"lastVisit"`
	FavoriteGames []string `gorm:"serializer:json" json:"favoriteGames"`
	Notes         string   `json:"notes"`
	Balance       float64  `json:"balance"`
}
