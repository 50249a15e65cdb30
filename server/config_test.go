package server

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{name: "inmem", input: "inmem", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem uppercase", input: "INMEM", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem with params", input: "inmem:/data", expectErr: true},
		{name: "sqlite", input: "sqlite: /var/llgram ", expect: Database{Type: DatabaseSQLite, DataDir: "/var/llgram"}},
		{name: "sqlite without dir", input: "sqlite", expectErr: true},
		{name: "none", input: "none", expectErr: true},
		{name: "unknown", input: "postgres:db", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseDBConnString(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Database_Connect(t *testing.T) {
	assert := assert.New(t)

	st, err := Database{Type: DatabaseSQLite, DataDir: filepath.Join(t.TempDir(), "nested", "dir")}.Connect()
	if assert.NoError(err) {
		assert.NoError(st.Close())
	}

	st, err = Database{Type: DatabaseInMemory}.Connect()
	if assert.NoError(err) {
		assert.NoError(st.Close())
	}

	_, err = Database{}.Connect()
	assert.Error(err)
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}.FillDefaults()

	assert.Equal(DatabaseInMemory, cfg.DB.Type)
	assert.Equal(time.Second, cfg.UnauthDelay())
	assert.NoError(cfg.Validate())

	noDelay := Config{UnauthDelayMillis: -1}.FillDefaults()
	assert.Equal(time.Duration(0), noDelay.UnauthDelay())
}

func Test_Config_Validate(t *testing.T) {
	okSecret := []byte(strings.Repeat("s", MinSecretSize))

	testCases := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{
			name: "valid",
			cfg:  Config{TokenSecret: okSecret, DB: Database{Type: DatabaseInMemory}, AdminPassword: "pw"},
		},
		{
			name:      "short secret",
			cfg:       Config{TokenSecret: okSecret[1:], DB: Database{Type: DatabaseInMemory}},
			expectErr: true,
		},
		{
			name:      "long secret",
			cfg:       Config{TokenSecret: []byte(strings.Repeat("s", MaxSecretSize+1)), DB: Database{Type: DatabaseInMemory}},
			expectErr: true,
		},
		{
			name:      "no DB",
			cfg:       Config{TokenSecret: okSecret},
			expectErr: true,
		},
		{
			name:      "password too long for bcrypt",
			cfg:       Config{TokenSecret: okSecret, DB: Database{Type: DatabaseInMemory}, AdminPassword: strings.Repeat("p", MaxPasswordSize+1)},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.cfg.Validate()
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}
