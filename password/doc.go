// Package password provides the default [loginguard.PasswordHasher]:
// argon2id with PHC-formatted output.
//
// Hashes are self-describing ($argon2id$v=19$m=…,t=…,p=…$salt$hash), so
// verification uses the parameters embedded in the stored hash rather than
// the current configuration. Comparison is constant-time.
//
// # What this package must NOT do
//
//   - Store or look up credentials — it only transforms and compares secrets.
//   - Import loginguard or any sibling package.
package password
