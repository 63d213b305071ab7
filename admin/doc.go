// Package admin holds the provisioning operations: seeding the challenge
// catalog and granting admin rights. Both run through the gateway's
// elevated handle, so every write lands in the audit trail.
package admin
