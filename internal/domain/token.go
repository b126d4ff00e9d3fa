package domain

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
)

// TokenID is the item identifier assigned at mint time
type TokenID string

// TokenIDFromSequence renders a sequence number as a token identifier
func TokenIDFromSequence(seq uint64) TokenID {
	return TokenID(strconv.FormatUint(seq, 10))
}

// Token is the canonical record of a minted item
type Token struct {
	OwnerID            AccountID            `json:"owner_id"`
	ApprovedAccountIDs map[AccountID]uint64 `json:"approved_account_ids"`
	NextApprovalID     uint64               `json:"next_approval_id"`
	// Royalty shares in basis points, keyed by payout account
	Royalty map[AccountID]uint32 `json:"royalty"`
}

// NewToken creates a token held by owner with no approvals and no royalty
func NewToken(owner AccountID) *Token {
	return &Token{
		OwnerID:            owner,
		ApprovedAccountIDs: map[AccountID]uint64{},
		NextApprovalID:     0,
		Royalty:            map[AccountID]uint32{},
	}
}

// IssueApproval grants account an approval and returns the approval id it was issued.
// Re-approving an account replaces its previous approval id with a fresh one.
func (t *Token) IssueApproval(account AccountID) uint64 {
	if t.ApprovedAccountIDs == nil {
		t.ApprovedAccountIDs = map[AccountID]uint64{}
	}
	id := t.NextApprovalID
	t.ApprovedAccountIDs[account] = id
	t.NextApprovalID++
	return id
}

// RevokeApproval removes the approval of account. NextApprovalID is left untouched.
func (t *Token) RevokeApproval(account AccountID) {
	delete(t.ApprovedAccountIDs, account)
}

// IsApproved reports whether account holds an approval, optionally matching approvalID
func (t *Token) IsApproved(account AccountID, approvalID *uint64) bool {
	id, ok := t.ApprovedAccountIDs[account]
	if !ok {
		return false
	}
	return approvalID == nil || *approvalID == id
}

// RoyaltyTotal returns the sum of all royalty shares in basis points
func (t *Token) RoyaltyTotal() uint64 {
	var total uint64
	for _, share := range t.Royalty {
		total += uint64(share)
	}
	return total
}

// TokenMetadata is the descriptive record of one item. Every field is optional.
type TokenMetadata struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Media         *string `json:"media,omitempty"`          // URL or content identifier of the media
	MediaHash     *string `json:"media_hash,omitempty"`     // base64 sha256 of the media content
	Copies        *uint64 `json:"copies,omitempty"`         // number of copies of this set of metadata in existence
	IssuedAt      *uint64 `json:"issued_at,omitempty"`      // unix epoch milliseconds
	ExpiresAt     *uint64 `json:"expires_at,omitempty"`     // unix epoch milliseconds
	StartsAt      *uint64 `json:"starts_at,omitempty"`      // unix epoch milliseconds
	UpdatedAt     *uint64 `json:"updated_at,omitempty"`     // unix epoch milliseconds
	Extra         *string `json:"extra,omitempty"`          // opaque extension data, stored verbatim
	Reference     *string `json:"reference,omitempty"`      // URL to an off-registry JSON file with more info
	ReferenceHash *string `json:"reference_hash,omitempty"` // base64 sha256 of the reference content
}

// CollectionMetadata describes the registry as a whole
type CollectionMetadata struct {
	Spec          string  `json:"spec"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Icon          *string `json:"icon,omitempty"` // data URI
	BaseURI       *string `json:"base_uri,omitempty"`
	Reference     *string `json:"reference,omitempty"`
	ReferenceHash *string `json:"reference_hash,omitempty"`
}

// Validate checks the required collection fields
func (c CollectionMetadata) Validate() error {
	if c.Spec == "" || c.Name == "" || c.Symbol == "" {
		return fmt.Errorf("%w: spec, name and symbol are required", ErrInvalidCollectionMetadata)
	}
	if (c.Reference == nil) != (c.ReferenceHash == nil) {
		return fmt.Errorf("%w: reference and reference_hash must be set together", ErrInvalidCollectionMetadata)
	}
	return nil
}

//go:embed collection_icon.txt
var defaultCollectionIcon string

// DefaultCollectionMetadata returns the collection metadata used when none is supplied
func DefaultCollectionMetadata() CollectionMetadata {
	icon := defaultCollectionIcon
	return CollectionMetadata{
		Spec:   NFT_COLLECTION_SPEC,
		Name:   "NFT Mint Contract",
		Symbol: "NMC",
		Icon:   &icon,
	}
}

// TokenView is the read model of a token joined with its metadata
type TokenView struct {
	TokenID            TokenID              `json:"token_id"`
	OwnerID            AccountID            `json:"owner_id"`
	Metadata           TokenMetadata        `json:"metadata"`
	ApprovedAccountIDs map[AccountID]uint64 `json:"approved_account_ids"`
	Royalty            map[AccountID]uint32 `json:"royalty"`
}

// SortTokenIDs orders identifiers by their numeric value, falling back to
// lexical order for identifiers that are not numbers
func SortTokenIDs(ids []TokenID) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseUint(string(ids[i]), 10, 64)
		b, errB := strconv.ParseUint(string(ids[j]), 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return ids[i] < ids[j]
	})
}
