// Package sfmcclient provides the primary entry point for constructing a
// Marketing Cloud client that implements the sfmc.Client interface.
//
// It layers configuration, HTTP transport and the client-credentials token
// manager on top of the interfaces and types defined in the sfmc package.
// Every data extension obtained from one client shares its access token.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
//	  "github.com/fivetwenty-io/sfmc-client/pkg/sfmcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := sfmcclient.New(&sfmc.Config{
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    AuthEndpoint: "https://mc1234.auth.marketingcloudapis.com",
//	    RESTEndpoint: "https://mc1234.rest.marketingcloudapis.com",
//	    SOAPEndpoint: "https://mc1234.soap.marketingcloudapis.com",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // REST: nothing is sent until Execute.
//	  rows, err := cli.DataExtension("Contacts").Get().
//	    Where("Status", sfmc.Equal, "active").
//	    Where("Age", sfmc.GreaterThan, "21").
//	    Execute(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = rows
//
//	  // SOAP: filters compile to a right-leaning AND tree in call order.
//	  rows, err = cli.DataExtension("Contacts").Soap().
//	    Get([]string{"Email", "Name"}, nil).
//	    Where("Status", sfmc.Equals, "active").
//	    Execute(ctx)
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Helpers
//
// NewWithSubdomain derives all three endpoints from a tenant subdomain.
package sfmcclient
