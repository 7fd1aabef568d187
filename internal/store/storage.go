package store

type Storage struct {
	Debtors        *Collection[DebtorRecord]
	ImportMetadata *Document[ImportMetadata]
	ImportHistory  *Collection[ImportHistory]
	Clients        *Collection[ClientCompany]
	Employees      *Collection[Employee]
	Goals          *Collection[Goal]
	Tasks          *Collection[Task]
	Meetings       *Collection[Meeting]
}

func NewStorage(rs RecordStore) *Storage {
	return &Storage{
		Debtors:        NewCollection[DebtorRecord](rs, CollectionDebtors),
		ImportMetadata: NewDocument[ImportMetadata](rs, CollectionImportMetadata),
		ImportHistory:  NewCollection[ImportHistory](rs, CollectionImportHistory),
		Clients:        NewCollection[ClientCompany](rs, CollectionClients),
		Employees:      NewCollection[Employee](rs, CollectionEmployees),
		Goals:          NewCollection[Goal](rs, CollectionGoals),
		Tasks:          NewCollection[Task](rs, CollectionTasks),
		Meetings:       NewCollection[Meeting](rs, CollectionMeetings),
	}
}
