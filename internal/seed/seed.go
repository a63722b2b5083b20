package seed

import (
	"github.com/sirupsen/logrus"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
)

// LoadDemoData fills the directory with a small deterministic pipeline for
// demos and manual testing. Scores are spread around the default
// auto-convert threshold so both conversion paths can be tried immediately.
func LoadDemoData(dir *directory.Directory) {
	ana := dir.AddUser(entity.NewUser("Ana Reyes", "Account Executive", "ana@pipecrm.example", "5551000001"))
	noah := dir.AddUser(entity.NewUser("Noah Petrov", "Account Executive", "noah@pipecrm.example", "5551000002"))
	dir.AddUser(entity.NewSalesManager("Marcus Chen", "Sales Manager", "marcus@pipecrm.example", "5551000003", 50))

	dir.AddLead(entity.NewLead("Globex Corporation", "Hank Scorpio", "hank@globex.example", "5553004000", 92, &ana.ID))
	dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "bill@initech.example", "5551002000", 82, &ana.ID))
	dir.AddLead(entity.NewLead("Hooli", "Gavin Belson", "gavin@hooli.example", "5557006000", 65, &noah.ID))
	dir.AddLead(entity.NewLead("Pied Piper", "Richard Hendricks", "", "5559008000", 55, nil))

	customer := dir.AddCustomer(entity.NewCustomer("Vandelay Industries", "Art Vandelay", "5552009000", "art@vandelay.example", &noah.ID))
	dir.AddContract(customer.ID, "IMPORT-EXPORT-2026")

	users, leads, customers := dir.Counts()
	logrus.Infof("🌱 demo data loaded: %d users, %d leads, %d customers", users, leads, customers)
}
