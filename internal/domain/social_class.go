package domain

// SocialClass correlates income, credit limit and delinquency risk
// across all records generated for one entity.
type SocialClass string

const (
	ClassA SocialClass = "A"
	ClassB SocialClass = "B"
	ClassC SocialClass = "C"
	ClassD SocialClass = "D"
	ClassE SocialClass = "E"
)

// SocialClasses lists the labels in sampling order.
var SocialClasses = []SocialClass{ClassA, ClassB, ClassC, ClassD, ClassE}
