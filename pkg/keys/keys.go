package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

const (
	privateKeyFile = "id_rsa_priv.pem"
	publicKeyFile  = "id_rsa_pub.pem"

	defaultBits = 4096
)

// Pair holds the RSA keypair used to sign and verify identity tokens.
type Pair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// Ensure generates the signing keypair under dir on first start. The private
// key PEM is encrypted with AES-256-CBC under passphrase, the public key is
// written as PKIX PEM. If both files already exist, Ensure is a no-op.
func Ensure(dir, passphrase string) error {
	return ensureBits(dir, passphrase, defaultBits)
}

func ensureBits(dir, passphrase string, bits int) error {
	privPath := filepath.Join(dir, privateKeyFile)
	pubPath := filepath.Join(dir, publicKeyFile)

	if fileExists(privPath) && fileExists(pubPath) {
		return nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create keys dir: %w", err)
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generate rsa key: %w", err)
	}

	block, err := x509.EncryptPEMBlock(
		rand.Reader,
		"RSA PRIVATE KEY",
		x509.MarshalPKCS1PrivateKey(key),
		[]byte(passphrase),
		x509.PEMCipherAES256,
	)
	if err != nil {
		return fmt.Errorf("encrypt private key: %w", err)
	}

	if err := os.WriteFile(privPath, pem.EncodeToMemory(block), 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	return nil
}

// Load reads the keypair back from dir, decrypting the private key with passphrase.
func Load(dir, passphrase string) (*Pair, error) {
	privPEM, err := os.ReadFile(filepath.Join(dir, privateKeyFile))
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	block, _ := pem.Decode(privPEM)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", privateKeyFile)
	}
	der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("decrypt private key: %w", err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubPEM, err := os.ReadFile(filepath.Join(dir, publicKeyFile))
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	block, _ = pem.Decode(pubPEM)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", publicKeyFile)
	}
	pubAny, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pub, ok := pubAny.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}

	return &Pair{Private: priv, Public: pub}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
