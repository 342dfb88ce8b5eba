// Package invest tracks the positions of a personal stock portfolio.
//
// The user records buy trades for stock symbols. Trades are grouped by symbol
// into positions, kept in a Ledger that persists itself in a key/value Store
// after every change.
//
// Valuations are never stored. Valuate computes the cost basis of a position
// (total shares, total cost, weighted average price) and, given a live quote,
// its market value and profit and loss. Aggregate rolls all positions up into
// a portfolio Summary.
//
// Quotes are supplied by a Gateway. A missing quote is not an error: cost
// basis figures do not need it, and the figures that do are left unset.
package invest
