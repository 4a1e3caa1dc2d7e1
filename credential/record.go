package credential

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the persisted form of a hashed credential.
//
// A Record is self-describing: verification re-derives the key from the
// salt, iteration count, and key length stored in the record itself, never
// from the engine's current defaults, so records created under old
// configurations stay verifiable after the defaults move on.
//
// Records are immutable once created — they are only compared against fresh
// input or inspected for expiry.  Salt and Hash carry standard base64.
type Record struct {
	// Hash is the base64-encoded derived key.
	Hash string `json:"hash"`

	// Salt is the base64-encoded salt.  Its decoded length equals KeyLength:
	// a salt shorter than the derived key would narrow the precomputation
	// space an attacker has to cover.
	Salt string `json:"salt"`

	// KeyLength is the byte length of both the salt and the derived key.
	KeyLength int `json:"keyLength"`

	// HashMethod names the key-stretching algorithm that produced Hash.
	HashMethod Method `json:"hashMethod"`

	// Iterations is the work factor actually applied when the record was
	// created.  Zero only on legacy records (see [Record.IsLegacy]).
	Iterations int `json:"iterations"`

	// legacy marks records decoded from the pre-JSON "<salt>$<hash>" form,
	// which carries no iteration count of its own.
	legacy bool
}

// Encode serialises the record to its JSON wire form.
func (r Record) Encode() string {
	// Marshalling a struct of strings and ints cannot fail.
	out, _ := json.Marshal(r)
	return string(out)
}

// SaltBytes decodes and returns the salt.
func (r Record) SaltBytes() ([]byte, error) {
	b, err := decodeBase64(r.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64", ErrMalformedRecord)
	}
	return b, nil
}

// KeyBytes decodes and returns the derived key.
func (r Record) KeyBytes() ([]byte, error) {
	b, err := decodeBase64(r.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64", ErrMalformedRecord)
	}
	return b, nil
}

// IsLegacy reports whether the record was decoded from the legacy
// "<base64-salt>$<base64-hash>" encoding, which stores no iteration count.
// Legacy records verify against [Options].LegacyIterations and are always
// judged expired by [Engine.Expired].
func (r Record) IsLegacy() bool { return r.legacy }

// DecodeRecord parses the persisted form of a credential.
//
// Two encodings are accepted:
//
//   - the JSON form produced by [Record.Encode] (and by every [Engine.Hash]
//     call), and
//   - the read-only legacy form "<base64-salt>$<base64-hash>", kept
//     decodable for migration of pre-JSON stores.
//
// Any structural defect — unparseable input, missing or wrong-typed fields,
// undecodable base64, a key length that disagrees with the decoded hash —
// yields [ErrMalformedRecord].  A decode failure is never interpreted as a
// wrong password.
func DecodeRecord(encoded string) (Record, error) {
	s := strings.TrimSpace(encoded)
	if s == "" {
		return Record{}, fmt.Errorf("%w: empty input", ErrMalformedRecord)
	}
	if strings.HasPrefix(s, "{") {
		return decodeJSONRecord(s)
	}
	if strings.Contains(s, "$") {
		return decodeLegacyRecord(s)
	}
	return Record{}, fmt.Errorf("%w: unrecognised encoding", ErrMalformedRecord)
}

func decodeJSONRecord(s string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if r.Hash == "" || r.Salt == "" {
		return Record{}, fmt.Errorf("%w: missing hash or salt field", ErrMalformedRecord)
	}
	if r.HashMethod == "" {
		return Record{}, fmt.Errorf("%w: missing hashMethod field", ErrMalformedRecord)
	}
	if r.Iterations < 1 {
		return Record{}, fmt.Errorf("%w: iterations %d must be ≥ 1", ErrMalformedRecord, r.Iterations)
	}
	if r.KeyLength < 1 {
		return Record{}, fmt.Errorf("%w: keyLength %d must be ≥ 1", ErrMalformedRecord, r.KeyLength)
	}
	key, err := r.KeyBytes()
	if err != nil {
		return Record{}, err
	}
	if len(key) != r.KeyLength {
		return Record{}, fmt.Errorf("%w: keyLength %d disagrees with decoded hash length %d",
			ErrMalformedRecord, r.KeyLength, len(key))
	}
	if _, err := r.SaltBytes(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// decodeLegacyRecord parses "<base64-salt>$<base64-hash>".  The format is
// method-less and iteration-less; the decoded record is flagged legacy and
// assumes [MethodPBKDF2], with the key length taken from the decoded hash.
func decodeLegacyRecord(s string) (Record, error) {
	parts := strings.Split(s, "$")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Record{}, fmt.Errorf("%w: expected <salt>$<hash>", ErrMalformedRecord)
	}
	salt, err := decodeBase64(parts[0])
	if err != nil {
		return Record{}, fmt.Errorf("%w: invalid salt base64", ErrMalformedRecord)
	}
	key, err := decodeBase64(parts[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: invalid hash base64", ErrMalformedRecord)
	}
	if len(salt) == 0 || len(key) == 0 {
		return Record{}, fmt.Errorf("%w: empty salt or hash", ErrMalformedRecord)
	}
	return Record{
		Hash:       base64.StdEncoding.EncodeToString(key),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		KeyLength:  len(key),
		HashMethod: MethodPBKDF2,
		legacy:     true,
	}, nil
}

// decodeBase64 attempts the standard alphabet first, then the unpadded
// variant, so records that passed through systems which strip "=" padding
// remain decodable.
func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
