// Package contracts defines the procurement records served by the contracts API and
// the Source contract through which list views retrieve them.
package contracts
