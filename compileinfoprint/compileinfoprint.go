// compileinfoprint is imported by every snpqc tool for the side effect of
// printing its compileinfo to os.Stderr, ahead of any log output.
package compileinfoprint

import "github.com/carbocation/snpqc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
