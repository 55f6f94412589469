// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linkwarden models the Linkwarden backup document, the shape its
// import feature accepts. Field names and nesting follow Linkwarden's own
// backup exports; nullable fields are pointers so absent values serialize
// as JSON null rather than zero values.
package linkwarden

// LinkTypeURL is the only link type the converter emits.
const LinkTypeURL = "url"

// Backup is the top-level import document: a user profile wrapper around
// a set of collections.
type Backup struct {
	Name                    string       `json:"name"`
	Username                string       `json:"username"`
	Email                   *string      `json:"email"`
	EmailVerified           *string      `json:"emailVerified"`
	UnverifiedNewEmail      *string      `json:"unverifiedNewEmail"`
	Image                   *string      `json:"image"`
	Locale                  string       `json:"locale"`
	ParentSubscriptionID    *int         `json:"parentSubscriptionId"`
	CollectionOrder         []int        `json:"collectionOrder"`
	LinksRouteTo            string       `json:"linksRouteTo"`
	AITaggingMethod         string       `json:"aiTaggingMethod"`
	AIPredefinedTags        []string     `json:"aiPredefinedTags"`
	AITagExistingLinks      bool         `json:"aiTagExistingLinks"`
	Theme                   string       `json:"theme"`
	ReadableFontFamily      string       `json:"readableFontFamily"`
	ReadableFontSize        string       `json:"readableFontSize"`
	ReadableLineHeight      string       `json:"readableLineHeight"`
	ReadableLineWidth       string       `json:"readableLineWidth"`
	PreventDuplicateLinks   bool         `json:"preventDuplicateLinks"`
	ArchiveAsScreenshot     bool         `json:"archiveAsScreenshot"`
	ArchiveAsMonolith       bool         `json:"archiveAsMonolith"`
	ArchiveAsPDF            bool         `json:"archiveAsPDF"`
	ArchiveAsReadable       bool         `json:"archiveAsReadable"`
	ArchiveAsWaybackMachine bool         `json:"archiveAsWaybackMachine"`
	IsPrivate               bool         `json:"isPrivate"`
	ReferredBy              *string      `json:"referredBy"`
	LastPickedAt            string       `json:"lastPickedAt"`
	AcceptPromotionalEmails bool         `json:"acceptPromotionalEmails"`
	TrialEndEmailSent       bool         `json:"trialEndEmailSent"`
	CreatedAt               string       `json:"createdAt"`
	UpdatedAt               string       `json:"updatedAt"`
	Collections             []Collection `json:"collections"`
	PinnedLinks             []Link       `json:"pinnedLinks"`
	WhitelistedUsers        []string     `json:"whitelistedUsers"`
}

// Collection is a named container owning a set of links.
type Collection struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Icon             *string  `json:"icon"`
	IconWeight       *string  `json:"iconWeight"`
	Color            *string  `json:"color"`
	ParentID         *int     `json:"parentId"`
	IsPublic         bool     `json:"isPublic"`
	OwnerID          int      `json:"ownerId"`
	CreatedByID      int      `json:"createdById"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
	RSSSubscriptions []string `json:"rssSubscriptions"`
	Links            []Link   `json:"links"`
}

// Link is a single bookmark inside a collection.
type Link struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	CreatedByID   int     `json:"createdById"`
	CollectionID  int     `json:"collectionId"`
	Icon          *string `json:"icon"`
	IconWeight    *string `json:"iconWeight"`
	Color         *string `json:"color"`
	URL           string  `json:"url"`
	ClientSide    bool    `json:"clientSide"`
	AITagged      bool    `json:"aiTagged"`
	IndexVersion  *int    `json:"indexVersion"`
	LastPreserved *string `json:"lastPreserved"`
	ImportDate    string  `json:"importDate"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	Tags          []Tag   `json:"tags"`
}

// Tag is a tag reference on a link. Linkwarden matches tags by name on
// import, so only the name is carried.
type Tag struct {
	Name string `json:"name"`
}

// NewBackup returns a Backup with Linkwarden's stock profile defaults and
// the given RFC 3339 timestamp on the document-level date fields. Slice
// fields are initialized so they serialize as [] rather than null, which
// the importer requires.
func NewBackup(stamp string) *Backup {
	return &Backup{
		Locale:              "en",
		CollectionOrder:     []int{},
		LinksRouteTo:        "ORIGINAL",
		AITaggingMethod:     "DISABLED",
		AIPredefinedTags:    []string{},
		Theme:               "dark",
		ReadableFontFamily:  "sans-serif",
		ReadableFontSize:    "18px",
		ReadableLineHeight:  "1.6",
		ReadableLineWidth:   "normal",
		ArchiveAsScreenshot: true,
		ArchiveAsMonolith:   true,
		ArchiveAsPDF:        true,
		ArchiveAsReadable:   true,
		LastPickedAt:        stamp,
		CreatedAt:           stamp,
		UpdatedAt:           stamp,
		Collections:         []Collection{},
		PinnedLinks:         []Link{},
		WhitelistedUsers:    []string{},
	}
}
