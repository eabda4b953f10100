package models

import (
	"time"
)

// Collection names in the document store. Each entity persists into the
// lowercase of its type name.
const (
	CollectionUserCard = "usercard"
	CollectionActivity = "activity"
	CollectionShare    = "share"
)

// User is created at signup and never mutated by this backend.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"displayName,omitempty" json:"displayName,omitempty"`
	AvatarURL    string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	AuthProvider string    `bson:"authProvider,omitempty" json:"authProvider,omitempty"`
	Currency     string    `bson:"currency,omitempty" json:"currency,omitempty"`
	Region       string    `bson:"region,omitempty" json:"region,omitempty"`
	CreatedAt    time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Set is immutable catalog metadata sourced from the external provider.
type Set struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Series         string         `json:"series,omitempty"`
	Total          int            `json:"total,omitempty"`
	PrintedTotal   int            `json:"printedTotal,omitempty"`
	Logo           string         `json:"logo,omitempty"`
	Symbol         string         `json:"symbol,omitempty"`
	ReleaseDate    string         `json:"releaseDate,omitempty"`
	Legalities     map[string]any `json:"legalities,omitempty"`
	TCGPlayerSetID string         `json:"tcgplayerSetId,omitempty"`
}

type CardImages struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

type CardVariants struct {
	Normal  bool `json:"normal,omitempty"`
	Reverse bool `json:"reverse,omitempty"`
	Holo    bool `json:"holo,omitempty"`
	Foil    bool `json:"foil,omitempty"`
	Rainbow bool `json:"rainbow,omitempty"`
	Gold    bool `json:"gold,omitempty"`
}

type Legalities struct {
	Standard string `json:"standard,omitempty"`
	Expanded string `json:"expanded,omitempty"`
}

// CardMaster is immutable catalog card metadata, sourced externally.
type CardMaster struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	SetID          string        `json:"setId,omitempty"`
	SetName        string        `json:"setName,omitempty"`
	Set            *SetRef       `json:"set,omitempty"`
	Number         string        `json:"number,omitempty"`
	Rarity         string        `json:"rarity,omitempty"`
	Types          []string      `json:"types,omitempty"`
	Subtypes       []string      `json:"subtypes,omitempty"`
	Supertype      string        `json:"supertype,omitempty"`
	Illustrator    string        `json:"illustrator,omitempty"`
	RegulationMark string        `json:"regulationMark,omitempty"`
	Legalities     *Legalities   `json:"legalities,omitempty"`
	Images         *CardImages   `json:"images,omitempty"`
	Variants       *CardVariants `json:"variants,omitempty"`
	ReleaseDate    string        `json:"releaseDate,omitempty"`
	LanguageCodes  []string      `json:"languageCodes,omitempty"`
}

// SetRef is the nested set reference the catalog provider embeds in cards.
type SetRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserCard is a quantity of a specific card variant held by a user.
// At most one record exists per (userId, cardId, finish, language); adds
// for the same key merge by incrementing quantity. Condition is stored
// but is not part of the merge key.
type UserCard struct {
	ID                string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            string     `bson:"userId" json:"userId"`
	CardID            string     `bson:"cardId" json:"cardId"`
	Finish            string     `bson:"finish" json:"finish"`
	Language          string     `bson:"language" json:"language"`
	Condition         string     `bson:"condition,omitempty" json:"condition,omitempty"`
	Quantity          int64      `bson:"quantity" json:"quantity"`
	PurchasePrice     float64    `bson:"purchasePrice,omitempty" json:"purchasePrice,omitempty"`
	PurchaseCurrency  string     `bson:"purchaseCurrency,omitempty" json:"purchaseCurrency,omitempty"`
	AcquiredAt        string     `bson:"acquiredAt,omitempty" json:"acquiredAt,omitempty"`
	Location          string     `bson:"location,omitempty" json:"location,omitempty"`
	Notes             string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Sleeve            bool       `bson:"sleeve,omitempty" json:"sleeve,omitempty"`
	Graded            bool       `bson:"graded,omitempty" json:"graded,omitempty"`
	GradeVendor       string     `bson:"gradeVendor,omitempty" json:"gradeVendor,omitempty"`
	GradeScore        string     `bson:"gradeScore,omitempty" json:"gradeScore,omitempty"`
	AcquisitionSource string     `bson:"acquisitionSource,omitempty" json:"acquisitionSource,omitempty"`
	LastValuation     float64    `bson:"lastValuation,omitempty" json:"lastValuation,omitempty"`
	LastValuationAt   *time.Time `bson:"lastValuationAt,omitempty" json:"lastValuationAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt         time.Time  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PricePoint is an ephemeral price quote returned by the pricing gateway.
// Not persisted.
type PricePoint struct {
	Market    float64 `json:"market"`
	Low       float64 `json:"low"`
	Mid       float64 `json:"mid"`
	High      float64 `json:"high"`
	Timestamp int64   `json:"timestamp"`
	Source    string  `json:"source"`
}

// Activity is an append-only record of a collection mutation. Immutable
// once written.
type Activity struct {
	ID        string         `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string         `bson:"userId" json:"userId"`
	Type      string         `bson:"type" json:"type"`
	Payload   map[string]any `bson:"payload,omitempty" json:"payload,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// EventCollectionUpdated tags the activity written for every successful
// collection add, merge or create alike.
const EventCollectionUpdated = "collection.updated"

// ShareToken binds an opaque random token to a user. Write-only in this
// backend; redemption lives elsewhere.
type ShareToken struct {
	ID        string         `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string         `bson:"userId" json:"userId"`
	Token     string         `bson:"token" json:"token"`
	Scope     map[string]any `bson:"scope,omitempty" json:"scope,omitempty"`
	ExpiresAt string         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// OCRResult is the extractor's verbatim output for a scanned image.
type OCRResult struct {
	Number     string  `json:"number,omitempty"`
	SetHint    string  `json:"setHint,omitempty"`
	Confidence float64 `json:"confidence"`
}

// MatchCandidate is one image-similarity hit, unranked by this backend.
type MatchCandidate struct {
	CardID string  `json:"cardId"`
	Score  float64 `json:"score"`
}

// ScanResult merges the two scan pipeline outputs without fusing them.
type ScanResult struct {
	OCR        OCRResult        `json:"ocr"`
	Candidates []MatchCandidate `json:"candidates"`
	ArchiveKey string           `json:"archiveKey,omitempty"`
}
