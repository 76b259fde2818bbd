// Package manifest builds the package.json of a generated application and
// checks it before it is written: every dependency range must parse as a
// semver constraint and the serialized document must satisfy the embedded
// JSON schema.
package manifest
