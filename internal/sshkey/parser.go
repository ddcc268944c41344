// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/crypto/ssh"
)

var (
	// ErrEmptyKey is returned for blank key material.
	ErrEmptyKey = errors.New("empty private key")
	// ErrInvalidPrivateKey wraps every structural parse failure.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// Format names the container encoding of a private key.
type Format string

const (
	FormatPKCS1          Format = "pkcs1"
	FormatSEC1           Format = "sec1"
	FormatDSA            Format = "dsa"
	FormatPKCS8          Format = "pkcs8"
	FormatPKCS8Encrypted Format = "pkcs8-encrypted"
	FormatOpenSSH        Format = "openssh"
)

var blockFormats = map[string]Format{
	"RSA PRIVATE KEY":       FormatPKCS1,
	"EC PRIVATE KEY":        FormatSEC1,
	"DSA PRIVATE KEY":       FormatDSA,
	"PRIVATE KEY":           FormatPKCS8,
	"ENCRYPTED PRIVATE KEY": FormatPKCS8Encrypted,
	"OPENSSH PRIVATE KEY":   FormatOpenSSH,
}

// legacy PEM blocks only name the family, not the curve or size.
var blockTypes = map[string]string{
	"RSA PRIVATE KEY": ssh.KeyAlgoRSA,
	"DSA PRIVATE KEY": ssh.KeyAlgoDSA,
	"EC PRIVATE KEY":  "ecdsa",
}

// KeyInfo describes a structurally valid private key. Type is the SSH public
// key algorithm when it can be determined without the passphrase.
type KeyInfo struct {
	Format    Format `json:"format" yaml:"format"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Encrypted bool   `json:"encrypted" yaml:"encrypted"`
}

// IsStructurallyValid reports whether key parses as a recognized private key
// encoding. Encrypted keys are accepted without being decrypted.
func IsStructurallyValid(key []byte) bool {
	_, err := Inspect(key)
	return err == nil
}

// Inspect parses key without a passphrase and reports its encoding.
func Inspect(key []byte) (KeyInfo, error) {
	if len(bytes.TrimSpace(key)) == 0 {
		return KeyInfo{}, ErrEmptyKey
	}

	block, _ := pem.Decode(key)
	if block == nil {
		return KeyInfo{}, fmt.Errorf("%w: no PEM block found", ErrInvalidPrivateKey)
	}
	format, ok := blockFormats[block.Type]
	if !ok {
		return KeyInfo{}, fmt.Errorf("%w: unsupported block type %q", ErrInvalidPrivateKey, block.Type)
	}
	if format == FormatPKCS8Encrypted {
		if err := checkEncryptedPKCS8(block.Bytes); err != nil {
			return KeyInfo{}, err
		}
		return KeyInfo{Format: format, Encrypted: true}, nil
	}

	signer, err := ssh.ParsePrivateKey(key)
	var missing *ssh.PassphraseMissingError
	switch {
	case errors.As(err, &missing):
		if format != FormatOpenSSH {
			if err := checkLegacyEncryption(block); err != nil {
				return KeyInfo{}, err
			}
		}
		info := KeyInfo{Format: format, Type: blockTypes[block.Type], Encrypted: true}
		if missing.PublicKey != nil {
			info.Type = missing.PublicKey.Type()
		}
		return info, nil
	case err != nil:
		return KeyInfo{}, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return KeyInfo{Format: format, Type: signer.PublicKey().Type()}, nil
}

// checkLegacyEncryption validates the RFC 1421 envelope of a Proc-Type
// encrypted PEM block: a DEK-Info header and a body of whole cipher blocks.
func checkLegacyEncryption(block *pem.Block) error {
	if block.Headers["DEK-Info"] == "" {
		return fmt.Errorf("%w: encrypted PEM block without DEK-Info header", ErrInvalidPrivateKey)
	}
	if len(block.Bytes) == 0 || len(block.Bytes)%8 != 0 {
		return fmt.Errorf("%w: encrypted PEM body is not a whole number of cipher blocks", ErrInvalidPrivateKey)
	}
	return nil
}

// checkEncryptedPKCS8 verifies the outer EncryptedPrivateKeyInfo structure
// (RFC 5958): SEQUENCE { AlgorithmIdentifier, OCTET STRING }.
func checkEncryptedPKCS8(der []byte) error {
	input := cryptobyte.String(der)
	var info, algorithm, data cryptobyte.String
	var oid asn1.ObjectIdentifier
	if !input.ReadASN1(&info, cbasn1.SEQUENCE) || !input.Empty() {
		return fmt.Errorf("%w: malformed EncryptedPrivateKeyInfo", ErrInvalidPrivateKey)
	}
	if !info.ReadASN1(&algorithm, cbasn1.SEQUENCE) || !algorithm.ReadASN1ObjectIdentifier(&oid) {
		return fmt.Errorf("%w: malformed encryption algorithm identifier", ErrInvalidPrivateKey)
	}
	if !info.ReadASN1(&data, cbasn1.OCTET_STRING) || len(data) == 0 || !info.Empty() {
		return fmt.Errorf("%w: missing encrypted key data", ErrInvalidPrivateKey)
	}
	return nil
}
