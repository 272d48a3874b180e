package permission_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal/permission"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Suite")
}

var _ = Describe("Set", func() {
	DescribeTable("Has",
		func(role, additional []string, required string, expected bool) {
			Expect(permission.NewSet(role, additional).Has(required)).To(Equal(expected))
		},
		Entry("granted by role", []string{"students.read"}, nil, "students.read", true),
		Entry("granted by additional permission", []string{"students.read"}, []string{"fees.update"}, "fees.update", true),
		Entry("missing everywhere", []string{"students.read"}, []string{"fees.update"}, "fees.delete", false),
		Entry("all wildcard", []string{"all"}, nil, "roles.delete", true),
		Entry("super_admin wildcard from additional", nil, []string{"super_admin"}, "promotions.create", true),
		Entry("empty set denies", nil, nil, "students.read", false),
		Entry("empty required code denies", []string{"all"}, nil, "", false),
		Entry("module wildcard is not a thing", []string{"students.manage"}, nil, "students.read", false),
	)

	It("is monotonic under additional grants", func() {
		base := permission.NewSet([]string{"students.read"})
		wider := permission.NewSet([]string{"students.read"}, []string{"fees.read"})
		for _, code := range []string{"students.read", "students.create", "fees.read"} {
			if base.Has(code) {
				Expect(wider.Has(code)).To(BeTrue())
			}
		}
	})

	It("lists codes sorted and deduplicated", func() {
		s := permission.NewSet([]string{"b.read", "a.read"}, []string{"a.read", ""})
		Expect(s.Codes()).To(Equal([]string{"a.read", "b.read"}))
	})

	It("matches any of several codes", func() {
		s := permission.NewSet([]string{"students.view_own"})
		Expect(s.HasAny("students.read", "students.view_own")).To(BeTrue())
		Expect(s.HasAny("students.read")).To(BeFalse())
	})

	DescribeTable("GrantsAccessControl",
		func(codes []string, expected bool) {
			Expect(permission.NewSet(codes).GrantsAccessControl()).To(Equal(expected))
		},
		Entry("classroom grants", []string{"students.read", "attendance.create"}, false),
		Entry("reading roles only", []string{"roles.read", "users.read"}, false),
		Entry("creating users", []string{"users.create"}, true),
		Entry("editing roles", []string{"roles.update"}, true),
		Entry("all wildcard", []string{"all"}, true),
		Entry("super_admin wildcard", []string{"super_admin"}, true),
	)

	It("builds module codes", func() {
		Expect(permission.Code("students", permission.ActionRead)).To(Equal("students.read"))
		Expect(permission.DefaultName("view_all", "read")).To(Equal("View all Read"))
	})
})
