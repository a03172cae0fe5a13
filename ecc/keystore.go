package ecc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/scrypt"

	"github.com/eth2030/goecc/internal/log"
)

var keyvaultLog = log.Default().Subsystem("keyvault")

// KeyVault is a map-of-encrypted-records store with a
// StoreKey/LoadKey/DeleteKey surface, generalized to work with any of
// the four curve tags, sealing each secret with scrypt, AES-256-CTR,
// and an HMAC-SHA256 integrity tag.

// KeyVaultConfig holds scrypt cost parameters.
type KeyVaultConfig struct {
	ScryptN int
	ScryptR int
	ScryptP int
}

// DefaultKeyVaultConfig returns conservative interactive-use scrypt
// parameters (N=2^18).
func DefaultKeyVaultConfig() KeyVaultConfig {
	return KeyVaultConfig{ScryptN: 1 << 18, ScryptR: 8, ScryptP: 1}
}

// EncryptedSecret is the sealed record for one private key.
type EncryptedSecret struct {
	Tag        uint32
	CipherText []byte
	Salt       []byte
	IV         []byte
	MAC        []byte
}

// KeyVault is an in-memory, encrypted-at-rest store of private keys,
// keyed by an opaque string handle supplied by the caller (this store
// has no chain-specific address concept of its own).
type KeyVault struct {
	mu     sync.RWMutex
	config KeyVaultConfig
	keys   map[string]*EncryptedSecret
}

// NewKeyVault creates an empty vault. A zero-valued config is replaced
// with DefaultKeyVaultConfig.
func NewKeyVault(config KeyVaultConfig) *KeyVault {
	if config.ScryptN == 0 {
		config = DefaultKeyVaultConfig()
	}
	return &KeyVault{config: config, keys: make(map[string]*EncryptedSecret)}
}

// StoreKey seals a private key of the given curve tag under passphrase.
// privateKey is zeroed once sealed, on every return path.
func (kv *KeyVault) StoreKey(handle string, tag uint32, privateKey []byte, passphrase string) (_ *EncryptedSecret, err error) {
	defer zeroBytes(privateKey)

	if len(privateKey) != 32 {
		return nil, errors.New("keyvault: private key must be 32 bytes")
	}

	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keyvault: salt: %w", err)
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("keyvault: iv: %w", err)
	}

	derived, err := scrypt.Key([]byte(passphrase), salt, kv.config.ScryptN, kv.config.ScryptR, kv.config.ScryptP, 64)
	if err != nil {
		return nil, fmt.Errorf("keyvault: scrypt: %w", err)
	}
	defer zeroBytes(derived)
	encKey, macKey := derived[:32], derived[32:]

	cipherText := make([]byte, len(privateKey))
	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("keyvault: aes: %w", err)
	}
	cipher.NewCTR(block, iv).XORKeyStream(cipherText, privateKey)

	mac := hmac.New(sha256.New, macKey)
	mac.Write(cipherText)
	tagBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(tagBytes, tag)
	mac.Write(tagBytes)

	es := &EncryptedSecret{
		Tag:        tag,
		CipherText: cipherText,
		Salt:       salt,
		IV:         iv,
		MAC:        mac.Sum(nil),
	}

	kv.mu.Lock()
	kv.keys[handle] = es
	kv.mu.Unlock()
	keyvaultLog.Info("sealed key", "handle", handle, "tag", tag)
	return es, nil
}

// LoadKey decrypts and returns the private key for handle. The derived
// key and scratch buffers are zeroed before return on every path.
func (kv *KeyVault) LoadKey(handle, passphrase string) (_ []byte, err error) {
	kv.mu.RLock()
	es, ok := kv.keys[handle]
	kv.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("keyvault: no key for handle %q", handle)
	}

	derived, err := scrypt.Key([]byte(passphrase), es.Salt, kv.config.ScryptN, kv.config.ScryptR, kv.config.ScryptP, 64)
	if err != nil {
		return nil, fmt.Errorf("keyvault: scrypt: %w", err)
	}
	defer zeroBytes(derived)
	encKey, macKey := derived[:32], derived[32:]

	mac := hmac.New(sha256.New, macKey)
	mac.Write(es.CipherText)
	tagBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(tagBytes, es.Tag)
	mac.Write(tagBytes)
	if !hmac.Equal(mac.Sum(nil), es.MAC) {
		keyvaultLog.Warn("MAC mismatch on load", "handle", handle)
		return nil, errors.New("keyvault: wrong passphrase (MAC mismatch)")
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("keyvault: aes: %w", err)
	}
	privateKey := make([]byte, len(es.CipherText))
	cipher.NewCTR(block, es.IV).XORKeyStream(privateKey, es.CipherText)
	return privateKey, nil
}

// HasKey reports whether handle has a sealed record.
func (kv *KeyVault) HasKey(handle string) bool {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	_, ok := kv.keys[handle]
	return ok
}

// DeleteKey removes the sealed record for handle.
func (kv *KeyVault) DeleteKey(handle string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if _, ok := kv.keys[handle]; !ok {
		return fmt.Errorf("keyvault: no key for handle %q", handle)
	}
	delete(kv.keys, handle)
	return nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
