package models

import (
	"fmt"
	"strings"
)

// Account identifies a tracked player by Riot ID
type Account struct {
	// Name is the Riot ID game name
	Name string

	// Tag is the Riot ID tag line, without the leading '#'
	Tag string
}

// RiotID returns the account in "Name#Tag" form
func (a Account) RiotID() string {
	return fmt.Sprintf("%s#%s", a.Name, a.Tag)
}

// String implements fmt.Stringer
func (a Account) String() string {
	return a.RiotID()
}

// IsValid reports whether both halves of the Riot ID are present
func (a Account) IsValid() bool {
	return strings.TrimSpace(a.Name) != "" && strings.TrimSpace(a.Tag) != ""
}

// ParseAccount parses a "Name#Tag" string. The last '#' separates the tag.
func ParseAccount(riotID string) (Account, error) {
	idx := strings.LastIndex(riotID, "#")
	if idx < 0 {
		return Account{}, fmt.Errorf("invalid riot id %q: must be Name#Tag", riotID)
	}

	account := Account{
		Name: strings.TrimSpace(riotID[:idx]),
		Tag:  strings.TrimSpace(riotID[idx+1:]),
	}
	if !account.IsValid() {
		return Account{}, fmt.Errorf("invalid riot id %q: name and tag cannot be empty", riotID)
	}

	return account, nil
}
