package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/parsepush/internal/cryptox"
	"github.com/dmitrijs2005/parsepush/internal/dbx"
)

const (
	metaSalt     = "salt"
	metaVerifier = "verifier"
)

// SQLiteVault stores AES-GCM sealed secrets in secrets.db. The key is derived
// from a passphrase; its salt and verifier live in the vault_meta table.
type SQLiteVault struct {
	db      *sql.DB
	service string
	key     []byte
	now     func() time.Time
}

// Open unlocks the vault in db, initialising salt and verifier on first use.
// A passphrase that does not match the stored verifier yields
// ErrWrongPassphrase.
func Open(ctx context.Context, db *sql.DB, service, passphrase string) (*SQLiteVault, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if service == "" {
		service = DefaultService
	}

	secret := []byte(passphrase)
	defer cryptox.Wipe(secret)

	var key []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		salt, err := getMeta(ctx, tx, metaSalt)
		if err != nil {
			return err
		}
		verifier, err := getMeta(ctx, tx, metaVerifier)
		if err != nil {
			return err
		}

		if salt != nil && verifier != nil {
			key = cryptox.DeriveMasterKey(secret, salt)
			if !cryptox.CheckVerifier(key, verifier) {
				cryptox.Wipe(key)
				return ErrWrongPassphrase
			}
			return nil
		}

		salt, err = cryptox.RandomBytes(cryptox.SaltSize)
		if err != nil {
			return err
		}
		key = cryptox.DeriveMasterKey(secret, salt)

		if err := setMeta(ctx, tx, metaSalt, salt); err != nil {
			return err
		}
		return setMeta(ctx, tx, metaVerifier, cryptox.MakeVerifier(key))
	})
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	return &SQLiteVault{db: db, service: service, key: key, now: time.Now}, nil
}

func getMeta(ctx context.Context, tx dbx.DBTX, name string) ([]byte, error) {
	var v []byte
	err := tx.QueryRowContext(ctx, `SELECT value FROM vault_meta WHERE key = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read vault_meta[%s]: %w", name, err)
	}
	return v, nil
}

func setMeta(ctx context.Context, tx dbx.DBTX, name string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO vault_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("write vault_meta[%s]: %w", name, err)
	}
	return nil
}

// additionalData binds a ciphertext to its row.
func (v *SQLiteVault) additionalData(key string) []byte {
	return []byte(v.service + "|" + key)
}

func (v *SQLiteVault) Save(ctx context.Context, key, secret string) error {
	ciphertext, nonce, err := cryptox.Seal(v.key, []byte(secret), v.additionalData(key))
	if err != nil {
		return fmt.Errorf("seal secret: %w", err)
	}

	return dbx.WithTx(ctx, v.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM secrets WHERE service = ? AND account = ?`, v.service, key); err != nil {
			return fmt.Errorf("failed to delete secret[%s]: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO secrets (service, account, nonce, ciphertext, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, v.service, key, nonce, ciphertext, v.now().Unix()); err != nil {
			return fmt.Errorf("failed to insert secret[%s]: %w", key, err)
		}
		return nil
	})
}

func (v *SQLiteVault) Read(ctx context.Context, key string) (string, bool, error) {
	var nonce, ciphertext []byte
	err := v.db.QueryRowContext(ctx,
		`SELECT nonce, ciphertext FROM secrets WHERE service = ? AND account = ?`,
		v.service, key).Scan(&nonce, &ciphertext)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read secret[%s]: %w", key, err)
	}

	plaintext, err := cryptox.Open(v.key, ciphertext, nonce, v.additionalData(key))
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrCorrupted, key)
	}
	return string(plaintext), true, nil
}

func (v *SQLiteVault) Delete(ctx context.Context, key string) error {
	_, err := v.db.ExecContext(ctx,
		`DELETE FROM secrets WHERE service = ? AND account = ?`, v.service, key)
	if err != nil {
		return fmt.Errorf("failed to delete secret[%s]: %w", key, err)
	}
	return nil
}

func (v *SQLiteVault) Keys(ctx context.Context) ([]string, error) {
	rows, err := v.db.QueryContext(ctx,
		`SELECT account FROM secrets WHERE service = ? ORDER BY account`, v.service)
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan secret row: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate secret rows: %w", err)
	}
	return keys, nil
}
