// Package events builds the standardized change-log records the registry
// emits for every mutating call.
package events

import (
	"fmt"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/domain"
)

// LogPrefix precedes the JSON body of every emitted log line
const LogPrefix = "EVENT_JSON:"

// Kind is the event name inside a log record
type Kind string

const (
	KindNftMint           Kind = "nft_mint"
	KindNftMetadataUpdate Kind = "nft_metadata_update"
)

// NftMintLog is the payload of one mint entry
type NftMintLog struct {
	OwnerID  domain.AccountID `json:"owner_id"`
	TokenIDs []domain.TokenID `json:"token_ids"`
	Memo     *string          `json:"memo,omitempty"`
}

// NftMetadataUpdateLog is the payload of one metadata update entry
type NftMetadataUpdateLog struct {
	TokenIDs []domain.TokenID `json:"token_ids"`
	Memo     *string          `json:"memo,omitempty"`
}

// EventLog is a versioned change-log record
type EventLog struct {
	Standard string      `json:"standard"`
	Version  string      `json:"version"`
	Event    Kind        `json:"event"`
	Data     interface{} `json:"data"`
}

// NewMintLog builds the record for a mint of tokenIDs to owner
func NewMintLog(owner domain.AccountID, tokenIDs []domain.TokenID, memo *string) EventLog {
	return EventLog{
		Standard: domain.NFT_STANDARD_NAME,
		Version:  domain.NFT_METADATA_SPEC,
		Event:    KindNftMint,
		Data:     []NftMintLog{{OwnerID: owner, TokenIDs: tokenIDs, Memo: memo}},
	}
}

// NewMetadataUpdateLog builds the record for a metadata overwrite of tokenIDs
func NewMetadataUpdateLog(tokenIDs []domain.TokenID, memo *string) EventLog {
	return EventLog{
		Standard: domain.NFT_STANDARD_NAME,
		Version:  domain.NFT_METADATA_SPEC,
		Event:    KindNftMetadataUpdate,
		Data:     []NftMetadataUpdateLog{{TokenIDs: tokenIDs, Memo: memo}},
	}
}

// Encoder renders event records
type Encoder struct {
	json adapter.JSON
}

// NewEncoder creates an encoder
func NewEncoder(json adapter.JSON) *Encoder {
	return &Encoder{json: json}
}

// Body returns the canonical JSON body of e
func (enc *Encoder) Body(e EventLog) ([]byte, error) {
	data, err := enc.json.MarshalCanonical(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", e.Event, err)
	}
	return data, nil
}

// Line returns e as a single log line
func (enc *Encoder) Line(e EventLog) (string, error) {
	body, err := enc.Body(e)
	if err != nil {
		return "", err
	}
	return LogPrefix + string(body), nil
}
