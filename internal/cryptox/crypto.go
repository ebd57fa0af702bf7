// Package cryptox implements the encrypted persistence transform: JSON state
// snapshots sealed with AES-256-GCM under a key derived from a configured
// secret, and opened back into a two-variant Result.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// DefaultKey is used when no secret is configured. It is public, so blobs
	// sealed with it are obfuscated rather than protected.
	DefaultKey = "gophsync-insecure-default-key"

	blobVersion = 1
	saltSize    = 16
	nonceSize   = 12
	keySize     = 32
	headerSize  = 1 + saltSize + nonceSize
)

var (
	ErrMalformedBlob      = errors.New("malformed blob")
	ErrUnsupportedVersion = errors.New("unsupported blob version")
	ErrDecrypt            = errors.New("wrong key or corrupted blob")
	ErrInvalidDocument    = errors.New("decrypted payload is not valid JSON")
)

// DeriveKey stretches secret into a 32-byte AES key with Argon2id.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, keySize)
}

// Transform seals and opens state snapshots for one secret. It generates its
// salt once, so encoding repeatedly pays for key derivation only once; keys
// for foreign salts met while decoding are cached as well.
//
// A Transform is safe for concurrent use.
type Transform struct {
	secret      []byte
	usesDefault bool
	salt        []byte

	mu   sync.Mutex
	keys map[string][]byte
}

// NewTransform returns a Transform for secret. An empty secret selects
// DefaultKey; see UsesDefaultKey.
func NewTransform(secret string) *Transform {
	t := &Transform{
		secret: []byte(secret),
		salt:   common.GenerateRandByteArray(saltSize),
		keys:   make(map[string][]byte),
	}
	if secret == "" {
		t.secret = []byte(DefaultKey)
		t.usesDefault = true
	}
	return t
}

// UsesDefaultKey reports whether the transform fell back to DefaultKey.
func (t *Transform) UsesDefaultKey() bool {
	return t.usesDefault
}

func (t *Transform) key(salt []byte) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	if k, ok := t.keys[string(salt)]; ok {
		return k
	}
	k := DeriveKey(t.secret, salt)
	t.keys[string(salt)] = k
	return k
}

// Encode serializes state to JSON and seals it. json.RawMessage and []byte
// are taken as already-serialized documents and must be valid JSON; any other
// value, strings included, is passed through json.Marshal.
//
// The result is printable (standard base64) and differs on every call because
// the nonce is random.
func (t *Transform) Encode(state any) (string, error) {
	plaintext, err := serialize(state)
	if err != nil {
		return "", err
	}

	aead, err := newAEAD(t.key(t.salt))
	if err != nil {
		return "", err
	}

	nonce := common.GenerateRandByteArray(nonceSize)

	out := make([]byte, 0, headerSize+len(plaintext)+aead.Overhead())
	out = append(out, blobVersion)
	out = append(out, t.salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, []byte{blobVersion})

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decode opens blob. Every failure is reported as Absent with a reason;
// Decode never returns an error and never panics on hostile input.
func (t *Transform) Decode(blob string) Result {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return Absent(fmt.Errorf("%w: %v", ErrMalformedBlob, err))
	}
	if len(raw) < headerSize {
		return Absent(fmt.Errorf("%w: %d bytes", ErrMalformedBlob, len(raw)))
	}
	if raw[0] != blobVersion {
		return Absent(fmt.Errorf("%w: %d", ErrUnsupportedVersion, raw[0]))
	}

	salt := raw[1 : 1+saltSize]
	nonce := raw[1+saltSize : headerSize]

	aead, err := newAEAD(t.key(salt))
	if err != nil {
		return Absent(err)
	}

	plaintext, err := aead.Open(nil, nonce, raw[headerSize:], []byte{blobVersion})
	if err != nil {
		return Absent(ErrDecrypt)
	}
	if !json.Valid(plaintext) {
		return Absent(ErrInvalidDocument)
	}

	return Decoded(plaintext)
}

// Encode seals state with key. See (*Transform).Encode.
func Encode(state any, key string) (string, error) {
	return NewTransform(key).Encode(state)
}

// Decode opens blob with key. See (*Transform).Decode.
func Decode(blob string, key string) Result {
	return NewTransform(key).Decode(blob)
}

func serialize(state any) ([]byte, error) {
	switch v := state.(type) {
	case json.RawMessage:
		return validDocument(v)
	case []byte:
		return validDocument(v)
	default:
		b, err := json.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("serialize state: %w", err)
		}
		return b, nil
	}
}

func validDocument(b []byte) ([]byte, error) {
	if !json.Valid(b) {
		return nil, ErrInvalidDocument
	}
	return b, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
