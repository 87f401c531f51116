/*
Package pathconfig implements the path configuration rule engine.

A Configuration holds an ordered table of Rules. Looking up a location merges
the properties of every matching rule in order, so later rules override earlier
keys. Three historical location rules are always appended to the table:

	/recede_historical_location   presentation=pop      historical_location=true
	/resume_historical_location   presentation=none     historical_location=true
	/refresh_historical_location  presentation=refresh  historical_location=true

Documents are JSON or YAML:

	{
	  "settings": {},
	  "rules": [
	    {"patterns": ["/new$"], "properties": {"context": "modal"}}
	  ]
	}

Sources are applied in order. A source that fails to load leaves the last
applied table in effect.
*/
package pathconfig
