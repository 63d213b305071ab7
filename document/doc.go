// Package document defines the typed views over raw document data that the
// authorization policy depends on: duos and their participants, per-user duo
// pointers, challenges, submissions, the duo submissions index, and admin
// user records.
//
// Decoders are strict where the policy reads a field. A participants array
// holding anything other than {id, name} objects is a decode error, not an
// alternate shape — the policy denies rather than guessing.
package document
