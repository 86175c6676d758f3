package nbox_test

import (
	"testing"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "App/Config/DB_HOST", want: "app/config/db_host"},
		{name: "strips leading slash", in: "/app/config", want: "app/config"},
		{name: "strips repeated leading slashes", in: "//app/config", want: "app/config"},
		{name: "keeps underscores", in: "app/db_host", want: "app/db_host"},
		{name: "keeps dashes", in: "app/db-host", want: "app/db-host"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nbox.NormalizeKey(tt.in))
		})
	}
}

func TestNormalizeEnvKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "underscores become dashes", in: "FOO_BAR", want: "foo-bar"},
		{name: "lowercases", in: "DataBase", want: "database"},
		{name: "already normalized", in: "foo-bar", want: "foo-bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nbox.NormalizeEnvKey(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	keys := []string{"/App/DB_HOST", "app/db-host", "FOO_BAR", "", "a//b"}

	for _, k := range keys {
		once := nbox.NormalizeKey(k)
		assert.Equal(t, once, nbox.NormalizeKey(once), "NormalizeKey(%q)", k)

		env := nbox.NormalizeEnvKey(k)
		assert.Equal(t, env, nbox.NormalizeEnvKey(env), "NormalizeEnvKey(%q)", k)
	}
}

func TestLookupKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "dashes in leaf become underscores", in: "app/db-host", want: "app/db_host"},
		{name: "underscores in leaf untouched", in: "app/db_host", want: "app/db_host"},
		{name: "only the last segment transformed", in: "my-app/sub-dir/api-key", want: "my-app/sub-dir/api_key"},
		{name: "lowercases", in: "APP/DB-HOST", want: "app/db_host"},
		{name: "single segment", in: "db-host", want: "db_host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nbox.LookupKey(tt.in))
		})
	}
}
