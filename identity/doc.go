// Package identity resolves the caller's identity from an authentication
// credential, once per request.
//
// A Bearer JWT yields Identity{UID, Admin, Authenticated}. The admin flag
// comes from the "admin" custom claim embedded in the token; when the token
// carries no such claim at all, the resolver may fall back to the caller's
// AdminUser document through an AdminDirectory. The claim, being the
// snapshot the caller actually presented, wins over the document when both
// are present.
//
// An absent or invalid credential resolves to an unauthenticated identity —
// never an error. Every rule in the policy denies unauthenticated access, so
// the deny happens where it belongs, with a reason code.
package identity
