// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction which is obtained by Conn.Tx.
// It is unsafe to be used concurrently. Statements of one transaction
// observe the ACID properties and a READ-COMMITTED isolation level is
// expected. Publishing a location locks the beacon row in the shared
// mode (BeaconsTxQueryer.BeaconForShare) before inserting its location,
// so a concurrent stop is either seen or waits for the insertion.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
