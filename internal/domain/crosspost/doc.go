// Package crosspost contains the domain model for distributing a seller's
// item to external marketplaces: the closed platform vocabulary, the
// per-platform listing payload formatters, the publish result variants, the
// per-(item, platform) attempt ledger, and the publisher port implemented by
// the infrastructure layer.
package crosspost
