// Package feed reads the version feed that drives catalog refreshes.
//
// The feed lists framework releases, newest first. Each release embeds the
// platform version it runs on:
//
//	{
//	  "projectReleases": [
//	    {
//	      "version": "3.1.0",
//	      "versionDisplayName": "3.1.0",
//	      "current": true,
//	      "snapshot": false,
//	      "bootInfo": {"version": "2.1.6.RELEASE", "versionDisplayName": "2.1.6", "current": true}
//	    }
//	  ]
//	}
//
// [Read] turns a [Document] into two element lists: the platform versions
// and the framework versions bound to them. A [Source] fetches the
// document, either from disk ([FileSource]) or over HTTP ([HTTPSource]).
package feed
