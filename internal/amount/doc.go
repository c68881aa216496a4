// Package amount derives and formats the monetary amount shown for a contract.
//
// Upstream records often lack structured totals but carry the amount inside the
// free-text summary ("Importe: 4.824,00 EUR"), so Best falls back to extracting it
// from the text. Amounts are formatted for the es-ES locale.
package amount
