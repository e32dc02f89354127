package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000000"

func TestNewSessionStoreValidation(t *testing.T) {
	_, err := NewSessionStore("zz")
	assert.Error(t, err)

	_, err = NewSessionStore("0011")
	assert.Error(t, err)

	store, err := NewSessionStore(testKeyHex)
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestSessionStoreEncryptDecrypt(t *testing.T) {
	store, err := NewSessionStore(testKeyHex)
	assert.NoError(t, err)

	enc, err := store.encrypt([]byte(`{"x":1}`))
	assert.NoError(t, err)
	assert.NotEmpty(t, enc)

	dec, err := store.decrypt(enc)
	assert.NoError(t, err)
	assert.Contains(t, string(dec), `"x":1`)

	_, err = store.decrypt("00") // too short ciphertext
	assert.Error(t, err)

	_, err = store.decrypt("zz-not-hex")
	assert.Error(t, err)
}

func TestSessionStoreEncryptDecrypt_InvalidKeyMaterial(t *testing.T) {
	store := &SessionStore{encryptionKey: []byte("short-key")}
	_, err := store.encrypt([]byte("x"))
	assert.Error(t, err)

	_, err = store.decrypt("00")
	assert.Error(t, err)
}

func TestSessionStoreCreateGetDeleteSuccess(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	defer cli.Close()

	store, err := NewSessionStore(testKeyHex)
	assert.NoError(t, err)

	ctx := context.Background()
	err = store.CreateSession(ctx, "sid-ok", &SessionData{AccessToken: "a-ok", RefreshToken: "r-ok"}, time.Minute)
	assert.NoError(t, err)

	data, err := store.GetSession(ctx, "sid-ok")
	assert.NoError(t, err)
	assert.Equal(t, "a-ok", data.AccessToken)
	assert.Equal(t, "r-ok", data.RefreshToken)

	err = store.DeleteSession(ctx, "sid-ok")
	assert.NoError(t, err)

	_, err = store.GetSession(ctx, "sid-ok")
	assert.Error(t, err)
}

func TestSessionStore_GetSessionInvalidJSONPayload(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	defer cli.Close()

	store, err := NewSessionStore(testKeyHex)
	assert.NoError(t, err)

	// Encrypt non-JSON plaintext to force the unmarshal branch in GetSession.
	enc, err := store.encrypt([]byte("plain-text"))
	assert.NoError(t, err)

	ctx := context.Background()
	err = Set(ctx, sessionKeyPrefix+"sid-bad-json", enc, time.Minute)
	assert.NoError(t, err)

	_, err = store.GetSession(ctx, "sid-bad-json")
	assert.Error(t, err)
}

func TestSessionStore_GetSessionWrongKey(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	defer cli.Close()

	writer, err := NewSessionStore(testKeyHex)
	assert.NoError(t, err)
	reader, err := NewSessionStore("1111111111111111111111111111111111111111111111111111111111111111")
	assert.NoError(t, err)

	ctx := context.Background()
	err = writer.CreateSession(ctx, "sid-key", &SessionData{AccessToken: "a", RefreshToken: "r"}, time.Minute)
	assert.NoError(t, err)

	_, err = reader.GetSession(ctx, "sid-key")
	assert.Error(t, err)
}
