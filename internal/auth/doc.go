// Package auth implements the access-control gate: HS256 bearer tokens,
// Authorization header parsing, role checks against stored users, and
// password hashing for users that register with one.
package auth
