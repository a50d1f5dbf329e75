package api

import "testing"

func TestEndpoint(t *testing.T) {
	cases := []struct {
		base string
		segs []string
		want string
	}{
		{"http://localhost:4000/api", []string{"users"}, "http://localhost:4000/api/users"},
		{"http://localhost:4000/api/", []string{"users", "u1"}, "http://localhost:4000/api/users/u1"},
		{"http://h/api", []string{"users", "username", "a b", "delete"}, "http://h/api/users/username/a%20b/delete"},
		{"http://h/api", []string{"tuits", "x/y"}, "http://h/api/tuits/x%2Fy"},
	}
	for _, tc := range cases {
		if got := endpoint(tc.base, tc.segs...); got != tc.want {
			t.Fatalf("endpoint(%q, %v) = %q, want %q", tc.base, tc.segs, got, tc.want)
		}
	}
}
