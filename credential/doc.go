// Package credential issues and verifies password credentials that are safe
// to persist: salted, key-stretched, encoded as self-describing records, and
// compared in constant time.
//
// # Architecture
//
// The [Engine] orchestrates four small pieces:
//
//   - a salt generator backed by crypto/rand ([GenerateSalt]),
//   - a [WorkPolicy] that turns a relative work multiplier and a point in
//     time into a concrete iteration count, escalating on a Moore's-Law
//     schedule so the prescribed cost doubles every two years,
//   - a registry of [Deriver] implementations keyed by [Method], with
//     PBKDF2-HMAC-SHA-256 as the single built-in, and
//   - the [Record] codec, which persists the algorithm identifier, salt,
//     derived key, iteration count, and key length as a JSON string.
//
// Verification is self-describing: every parameter needed to re-derive the
// key is read from the record, so changing an engine's defaults never breaks
// verification of existing records.  The final comparison goes through
// [github.com/hasbyte1/go-credential/timingsafe] rather than bytes.Equal.
//
// # Quick start
//
//	e, err := credential.NewDefaultEngine() // 66-byte keys, work 1, pbkdf2
//	if err != nil { log.Fatal(err) }
//
//	rec, _ := e.Hash("my-secret-password")
//	store(userID, rec.Encode())
//
//	ok, err := e.Verify(load(userID), "my-secret-password")
//
// Treat the three outcomes of Verify separately: (true, nil) is a match,
// (false, nil) is a wrong password, and (false, err) means the check could
// not be performed at all — surfacing err as "wrong password" would mask
// store corruption and entropy failures.
//
// # Hash aging
//
// Because the policy's prescribed iteration count rises over time, a record
// created years ago eventually falls below what a hash created today would
// receive.  [Engine.Expired] flags such records:
//
//	if expired, _ := e.Expired(stored, credential.DefaultExpiryDays); expired {
//	    // rehash on the next successful login
//	}
//
// # Security defaults
//
//   - Key and salt length: 66 bytes each, matched 1:1.
//   - Iterations: 1000 at the 2014 epoch, doubling every 2 years — roughly
//     80k in 2026 — scaled linearly by the Work option.
//   - Derivation: PBKDF2-HMAC-SHA-256 (RFC 2898 / PKCS #5 v2.0) from
//     golang.org/x/crypto/pbkdf2.
//
// # Thread safety
//
// Engines are safe for concurrent use.  Derivation runs without any engine
// lock, so concurrent Hash/Verify calls proceed in parallel; the deriver
// registry is the only guarded state.  Configuration is fixed at
// construction — configure before first use, then share the instance.
package credential
