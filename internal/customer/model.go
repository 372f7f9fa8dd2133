package customer

import (
	"encoding/json"
	"strings"
	"time"
)

type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// Date is a calendar day rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type Customer struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	Phone      string     `json:"phone"`
	BirthDate  *Date      `json:"birth_date"`
	Membership Membership `json:"membership"`
}

type Input struct {
	UserID     *uint       `json:"user_id"`
	Phone      *string     `json:"phone"`
	BirthDate  *Date       `json:"birth_date"`
	Membership *Membership `json:"membership"`
}
