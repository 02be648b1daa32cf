// Package supplier manages supplier onboarding: CRUD over supplier records
// and their data-source configuration, bounded test pulls against a
// supplier's SFTP drop with an audit trail, and mapping/schema assistance
// for wiring a new feed into the product schema.
package supplier
