// Package password hashes admin passwords with argon2id and verifies the
// legacy formats (werkzeug pbkdf2 / scrypt, bcrypt) still found in older
// databases, so those accounts can be upgraded on their next login.
package password

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
	"hash"
	"strconv"
	"strings"
)

var ErrUnknownHash = errors.New("unknown password hash format")

const (
	prefixArgon2id = "$argon2id$"
	prefixPBKDF2   = "pbkdf2:"
	prefixScrypt   = "scrypt:"

	// werkzeug 2.x 未写明迭代次数时的默认值
	defaultPBKDF2Iterations = 260000
	scryptKeyLength         = 64
)

// Hash 生成新的 argon2id hash
func Hash(plain string) (string, error) {
	h, err := argon2id.CreateHash(plain, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return h, nil
}

// Check 校验明文密码与 hash 是否匹配，所有比较都是常量时间的
func Check(plain, hashed string) (bool, error) {
	switch {
	case strings.HasPrefix(hashed, prefixArgon2id):
		match, _, err := argon2id.CheckHash(plain, hashed)
		return match, err
	case strings.HasPrefix(hashed, prefixPBKDF2):
		return checkPBKDF2(plain, hashed)
	case strings.HasPrefix(hashed, prefixScrypt):
		return checkScrypt(plain, hashed)
	case strings.HasPrefix(hashed, "$2a$"), strings.HasPrefix(hashed, "$2b$"), strings.HasPrefix(hashed, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return err == nil, err
	default:
		return false, ErrUnknownHash
	}
}

// NeedsRehash 判断 hash 是否需要升级为 argon2id
func NeedsRehash(hashed string) bool {
	return !strings.HasPrefix(hashed, prefixArgon2id)
}

// splitWerkzeug 拆分 method$salt$hash
func splitWerkzeug(hashed string) (method string, salt string, sum []byte, err error) {
	parts := strings.SplitN(hashed, "$", 3)
	if len(parts) != 3 {
		return "", "", nil, ErrUnknownHash
	}
	if sum, err = hex.DecodeString(parts[2]); err != nil {
		return "", "", nil, fmt.Errorf("invalid hash digest: %w", err)
	}
	return parts[0], parts[1], sum, nil
}

func checkPBKDF2(plain, hashed string) (bool, error) {
	method, salt, sum, err := splitWerkzeug(hashed)
	if err != nil {
		return false, err
	}

	// pbkdf2:<digest>[:<iterations>]
	args := strings.Split(method, ":")
	if len(args) < 2 || len(args) > 3 {
		return false, ErrUnknownHash
	}

	var (
		newHash func() hash.Hash
		keyLen  int
	)
	switch args[1] {
	case "sha256":
		newHash, keyLen = sha256.New, sha256.Size
	case "sha512":
		newHash, keyLen = sha512.New, sha512.Size
	case "sha1":
		newHash, keyLen = sha1.New, sha1.Size
	default:
		return false, fmt.Errorf("unsupported pbkdf2 digest %q: %w", args[1], ErrUnknownHash)
	}

	iterations := defaultPBKDF2Iterations
	if len(args) == 3 {
		if iterations, err = strconv.Atoi(args[2]); err != nil || iterations <= 0 {
			return false, fmt.Errorf("invalid pbkdf2 iterations %q: %w", args[2], ErrUnknownHash)
		}
	}

	derived := pbkdf2.Key([]byte(plain), []byte(salt), iterations, keyLen, newHash)
	return subtle.ConstantTimeCompare(derived, sum) == 1, nil
}

func checkScrypt(plain, hashed string) (bool, error) {
	method, salt, sum, err := splitWerkzeug(hashed)
	if err != nil {
		return false, err
	}

	// scrypt:<N>:<r>:<p>
	args := strings.Split(method, ":")
	if len(args) != 4 {
		return false, ErrUnknownHash
	}
	var params [3]int
	for i, s := range args[1:] {
		if params[i], err = strconv.Atoi(s); err != nil || params[i] <= 0 {
			return false, fmt.Errorf("invalid scrypt parameter %q: %w", s, ErrUnknownHash)
		}
	}

	derived, err := scrypt.Key([]byte(plain), []byte(salt), params[0], params[1], params[2], scryptKeyLength)
	if err != nil {
		return false, fmt.Errorf("failed to derive scrypt key: %w", err)
	}
	return subtle.ConstantTimeCompare(derived, sum) == 1, nil
}
