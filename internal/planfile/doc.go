// Package planfile reads and writes stage plans stored as YAML or TOML files.
//
// A plan file lists an optional wait and the ordered stages:
//
//	name: C-41
//	wait: "0:30"
//	stages:
//	  - name: Developer
//	    time: "3:15"
//	  - name: Blix
//	    time: "6:30"
//
// Every token is parsed before a plan is returned, so a bad file never starts
// a partial run.
package planfile
