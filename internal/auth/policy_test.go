package auth_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/warehouse-productivity/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

var _ = Describe("Policy", func() {
	var policy *auth.Policy

	admin := &auth.User{ID: 1, Username: "admin", Role: auth.RoleAdmin}
	manager := &auth.User{ID: 2, Username: "manager", Role: auth.RoleManager}
	lead := &auth.User{ID: 3, Username: "lead", Role: auth.RoleLead, SectionIDs: []int64{10}}
	employee := &auth.User{ID: 4, Username: "employee", Role: auth.RoleEmployee, SectionIDs: []int64{10, 20}}

	BeforeEach(func() {
		policy = auth.NewPolicy()
	})

	Describe("EffectiveRole", func() {
		It("treats a superuser as admin regardless of the role column", func() {
			superEmployee := &auth.User{ID: 9, Role: auth.RoleEmployee, IsSuperuser: true}
			Expect(superEmployee.EffectiveRole()).To(Equal(auth.RoleAdmin))
			Expect(policy.Can(superEmployee, auth.ActionCreate, nil)).To(BeTrue())
			Expect(policy.Can(superEmployee, auth.ActionEdit, &auth.EntryTarget{LeadID: 3})).To(BeTrue())
			Expect(policy.ScopeFor(superEmployee).All).To(BeTrue())
		})

		It("keeps the declared role for regular users", func() {
			Expect(employee.EffectiveRole()).To(Equal(auth.RoleEmployee))
		})
	})

	Describe("Can", func() {
		Context("view", func() {
			It("allows admins and managers to view any entry", func() {
				target := &auth.EntryTarget{LeadID: 99, SectionID: 99}
				Expect(policy.Can(admin, auth.ActionView, target)).To(BeTrue())
				Expect(policy.Can(manager, auth.ActionView, target)).To(BeTrue())
			})

			It("restricts leads to their own entries", func() {
				own := &auth.EntryTarget{LeadID: lead.ID, SectionID: 10}
				other := &auth.EntryTarget{LeadID: 99, SectionID: 10}
				Expect(policy.Can(lead, auth.ActionView, own)).To(BeTrue())
				Expect(policy.Can(lead, auth.ActionView, other)).To(BeFalse())
			})

			It("restricts employees to their section memberships", func() {
				inSection := &auth.EntryTarget{LeadID: 99, SectionID: 20}
				outside := &auth.EntryTarget{LeadID: 99, SectionID: 30}
				Expect(policy.Can(employee, auth.ActionView, inSection)).To(BeTrue())
				Expect(policy.Can(employee, auth.ActionView, outside)).To(BeFalse())
			})
		})

		Context("create", func() {
			It("allows admins, managers and leads", func() {
				Expect(policy.Can(admin, auth.ActionCreate, nil)).To(BeTrue())
				Expect(policy.Can(manager, auth.ActionCreate, nil)).To(BeTrue())
				Expect(policy.Can(lead, auth.ActionCreate, nil)).To(BeTrue())
			})

			It("denies employees", func() {
				Expect(policy.Can(employee, auth.ActionCreate, nil)).To(BeFalse())
			})

			It("pins leads to themselves for targeted creates", func() {
				Expect(policy.Can(lead, auth.ActionCreate, &auth.EntryTarget{LeadID: lead.ID})).To(BeTrue())
				Expect(policy.Can(lead, auth.ActionCreate, &auth.EntryTarget{LeadID: 99})).To(BeFalse())
			})
		})

		Context("edit", func() {
			It("allows admins and managers to edit any entry", func() {
				target := &auth.EntryTarget{LeadID: 99}
				Expect(policy.Can(admin, auth.ActionEdit, target)).To(BeTrue())
				Expect(policy.Can(manager, auth.ActionEdit, target)).To(BeTrue())
			})

			It("restricts leads to their own entries", func() {
				Expect(policy.Can(lead, auth.ActionEdit, &auth.EntryTarget{LeadID: lead.ID})).To(BeTrue())
				Expect(policy.Can(lead, auth.ActionEdit, &auth.EntryTarget{LeadID: 99})).To(BeFalse())
			})

			It("denies employees even inside their sections", func() {
				Expect(policy.Can(employee, auth.ActionEdit, &auth.EntryTarget{LeadID: 99, SectionID: 10})).To(BeFalse())
			})
		})

		It("denies a nil actor everything", func() {
			Expect(policy.Can(nil, auth.ActionView, nil)).To(BeFalse())
			Expect(policy.Can(nil, auth.ActionCreate, nil)).To(BeFalse())
		})
	})

	Describe("CanPickLead", func() {
		It("allows only managerial roles to pick an arbitrary lead", func() {
			Expect(policy.CanPickLead(admin)).To(BeTrue())
			Expect(policy.CanPickLead(manager)).To(BeTrue())
			Expect(policy.CanPickLead(lead)).To(BeFalse())
			Expect(policy.CanPickLead(employee)).To(BeFalse())
		})
	})

	Describe("ScopeFor", func() {
		It("gives admins and managers unrestricted scope", func() {
			Expect(policy.ScopeFor(admin).All).To(BeTrue())
			Expect(policy.ScopeFor(manager).All).To(BeTrue())
		})

		It("scopes leads to their own entries", func() {
			scope := policy.ScopeFor(lead)
			Expect(scope.All).To(BeFalse())
			Expect(scope.LeadID).To(Equal(lead.ID))
			Expect(scope.Empty()).To(BeFalse())
		})

		It("scopes employees to their section memberships", func() {
			scope := policy.ScopeFor(employee)
			Expect(scope.All).To(BeFalse())
			Expect(scope.SectionIDs).To(Equal([]int64{10, 20}))
		})

		It("is empty for employees with no memberships", func() {
			loner := &auth.User{ID: 5, Role: auth.RoleEmployee}
			Expect(policy.ScopeFor(loner).Empty()).To(BeTrue())
		})
	})
})
