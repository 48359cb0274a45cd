// Package api defines the tripledger wire contract: JSON message types and
// Connect handlers/clients for the Trip, Expense and Ledger services.
//
// Amounts on the wire are decimal numbers in major currency units
// (e.g. 12.5 means 12.50); the services convert them to integer cents.
//
// Messages are plain structs carried by JSONCodec, so any Connect client (or
// curl with Content-Type: application/json) can call the services:
//
//	curl -X POST localhost:8080/tripledger.v1.LedgerService/Settle \
//	  -H 'Content-Type: application/json' -d @snapshot.json
package api
