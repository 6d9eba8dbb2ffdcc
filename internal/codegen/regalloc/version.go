package regalloc

import "github.com/Masterminds/semver/v3"

// ProtocolVersion is the operand-encoding / interface contract version this
// build of the allocator implements. A frontend that builds a Function
// against a different generation of api.go (e.g. one that still assumes a
// single-def-per-instruction invariant that later changed) should not be
// fed to Allocate silently; CheckProtocolVersion gives an embedder spanning
// multiple frontends (as Orizon's pipeline eventually will once more ISAs
// land) a place to assert compatibility the same way
// cmd/orizon/pkg/commands/outdated.go checks a dependency's version
// against a constraint before using it.
var ProtocolVersion = semver.MustParse("1.0.0")

// protocolConstraint accepts any 1.x release: the operand/Instr interface
// shape is free to grow (new optional methods added via embedding) within
// a major version, but a 2.x would signal a breaking change to Defs/Uses
// semantics that old frontends must not be run against.
const protocolConstraintExpr = ">= 1.0.0, < 2.0.0"

// CheckProtocolVersion reports whether a frontend declaring frontendVersion
// may be allocated against this build of the allocator.
func CheckProtocolVersion(frontendVersion string) error {
	c, err := semver.NewConstraint(protocolConstraintExpr)
	if err != nil {
		return err
	}

	v, err := semver.NewVersion(frontendVersion)
	if err != nil {
		return err
	}

	ok, errs := c.Validate(v)
	if !ok {
		if len(errs) > 0 {
			return errs[0]
		}

		return faultf("PROTOCOL_VERSION_MISMATCH", "frontend version %s is not compatible with allocator protocol %s", frontendVersion, ProtocolVersion.String())
	}

	return nil
}
