package diagram

import (
	"fmt"

	"classdraw/validation"
)

// Stereotype is the optional stereotype of a class.
type Stereotype string

const (
	StereotypeNone                Stereotype = ""
	StereotypeAuxiliary           Stereotype = "Auxiliary"
	StereotypeFocus               Stereotype = "Focus"
	StereotypeImplementationClass Stereotype = "ImplementationClass"
	StereotypeMetaclass           Stereotype = "Metaclass"
	StereotypeType                Stereotype = "Type"
	StereotypeUtility             Stereotype = "Utility"
)

// Stereotypes lists every stereotype a class may carry.
var Stereotypes = []Stereotype{
	StereotypeAuxiliary,
	StereotypeFocus,
	StereotypeImplementationClass,
	StereotypeMetaclass,
	StereotypeType,
	StereotypeUtility,
}

// Valid reports whether s is empty or one of Stereotypes.
func (s Stereotype) Valid() bool {
	if s == StereotypeNone {
		return true
	}
	for _, known := range Stereotypes {
		if s == known {
			return true
		}
	}
	return false
}

// Classifier is the state shared by classes, interfaces and data types.
type Classifier struct {
	Shape
	Name                    string
	Properties              []Property
	Operations              []Operation
	NotShownPropertiesExist bool
	NotShownOperationsExist bool
}

func newClassifier(name string, x, y float64) Classifier {
	return Classifier{Shape: NewShape(x, y), Name: name}
}

// AddProperty appends a property.
func (c *Classifier) AddProperty(p Property) {
	c.Properties = append(c.Properties, p)
}

// AddOperation appends an operation.
func (c *Classifier) AddOperation(o Operation) {
	c.Operations = append(c.Operations, o)
}

// Validate checks the name, then every property and operation. Feature
// causes stay nested under their index.
func (c *Classifier) Validate() validation.Causes {
	var causes validation.Causes
	causes.Name("name", c.Name)
	for i, p := range c.Properties {
		causes.Wrap("properties", i, p.Validate())
	}
	for i, o := range c.Operations {
		causes.Wrap("operations", i, o.Validate())
	}
	return causes
}

// cloneClassifier returns a deep copy of the classifier state.
func (c *Classifier) cloneClassifier() Classifier {
	out := *c
	out.Properties = nil
	out.Operations = nil
	for _, p := range c.Properties {
		out.Properties = append(out.Properties, p.Clone())
	}
	for _, o := range c.Operations {
		out.Operations = append(out.Operations, o.Clone())
	}
	return out
}

func (c *Classifier) copyClassifier(other *Classifier) {
	clone := other.cloneClassifier()
	c.copyGeometry(&other.Shape)
	c.Name = clone.Name
	c.Properties = clone.Properties
	c.Operations = clone.Operations
	c.NotShownPropertiesExist = clone.NotShownPropertiesExist
	c.NotShownOperationsExist = clone.NotShownOperationsExist
}

func (c *Classifier) toRecord(tag string) Record {
	r := Record{"tag": tag, "name": c.Name}
	c.writeRecord(r)
	props := make([]any, len(c.Properties))
	for i, p := range c.Properties {
		props[i] = p.ToRecord()
	}
	ops := make([]any, len(c.Operations))
	for i, o := range c.Operations {
		ops[i] = o.ToRecord()
	}
	r["properties"] = props
	r["operations"] = ops
	r["isNotShownPropertiesExist"] = c.NotShownPropertiesExist
	r["isNotShownOperationsExist"] = c.NotShownOperationsExist
	return r
}

func (c *Classifier) readClassifier(rd *RecordReader) error {
	c.readRecord(rd)
	c.Name = rd.String("name")
	c.NotShownPropertiesExist = rd.Bool("isNotShownPropertiesExist")
	c.NotShownOperationsExist = rd.Bool("isNotShownOperationsExist")
	for i, pr := range rd.Records("properties") {
		p, err := PropertyFromRecord(pr)
		if err != nil {
			return fmt.Errorf("properties[%d]: %w", i, err)
		}
		c.Properties = append(c.Properties, p)
	}
	for i, opRec := range rd.Records("operations") {
		o, err := OperationFromRecord(opRec)
		if err != nil {
			return fmt.Errorf("operations[%d]: %w", i, err)
		}
		c.Operations = append(c.Operations, o)
	}
	return rd.Err()
}

// Class is a UML class.
type Class struct {
	Classifier
	Abstract   bool
	stereotype Stereotype
}

// NewClass creates a class at (x, y).
func NewClass(name string, x, y float64) *Class {
	return &Class{Classifier: newClassifier(name, x, y)}
}

// Stereotype returns the current stereotype.
func (c *Class) Stereotype() Stereotype {
	return c.stereotype
}

// SetStereotype assigns the stereotype. Assigning Utility makes every
// current feature static; see ApplyUtilityStereotype.
func (c *Class) SetStereotype(s Stereotype) {
	c.stereotype = s
	if s == StereotypeUtility {
		ApplyUtilityStereotype(c)
	}
}

// ApplyUtilityStereotype marks every property and operation of c as static.
// The change is one-way: clearing the stereotype later leaves the features
// static.
func ApplyUtilityStereotype(c *Class) {
	for i := range c.Properties {
		c.Properties[i].IsStatic = true
	}
	for i := range c.Operations {
		c.Operations[i].IsStatic = true
	}
}

func (c *Class) Tag() string { return TagClass }

// Validate extends the classifier rules with the stereotype check.
func (c *Class) Validate() validation.Causes {
	causes := c.Classifier.Validate()
	if !c.stereotype.Valid() {
		causes.Add("stereotype", validation.MsgInvalid)
	}
	return causes
}

func (c *Class) Clone() Element {
	return &Class{
		Classifier: c.cloneClassifier(),
		Abstract:   c.Abstract,
		stereotype: c.stereotype,
	}
}

func (c *Class) CopyFrom(other Element) error {
	o, ok := other.(*Class)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s onto %s", ErrTypeMismatch, other.Tag(), c.Tag())
	}
	c.copyClassifier(&o.Classifier)
	c.Abstract = o.Abstract
	c.stereotype = o.stereotype
	return nil
}

func (c *Class) ToSerializable() Record {
	r := c.toRecord(TagClass)
	r["isAbstract"] = c.Abstract
	r["stereotype"] = string(c.stereotype)
	return r
}

// DecodeClass builds a Class from its record.
func DecodeClass(rec Record, _ []Element) (Element, error) {
	c := &Class{}
	rd := NewRecordReader(rec)
	if err := c.readClassifier(rd); err != nil {
		return nil, err
	}
	c.Abstract = rd.Bool("isAbstract")
	c.stereotype = Stereotype(rd.String("stereotype"))
	return c, rd.Err()
}

// Interface is a UML interface.
type Interface struct {
	Classifier
}

// NewInterface creates an interface at (x, y).
func NewInterface(name string, x, y float64) *Interface {
	return &Interface{Classifier: newClassifier(name, x, y)}
}

func (i *Interface) Tag() string { return TagInterface }

func (i *Interface) Clone() Element {
	return &Interface{Classifier: i.cloneClassifier()}
}

func (i *Interface) CopyFrom(other Element) error {
	o, ok := other.(*Interface)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s onto %s", ErrTypeMismatch, other.Tag(), i.Tag())
	}
	i.copyClassifier(&o.Classifier)
	return nil
}

func (i *Interface) ToSerializable() Record {
	return i.toRecord(TagInterface)
}

// DecodeInterface builds an Interface from its record.
func DecodeInterface(rec Record, _ []Element) (Element, error) {
	i := &Interface{}
	if err := i.readClassifier(NewRecordReader(rec)); err != nil {
		return nil, err
	}
	return i, nil
}

// DataType is a UML data type.
type DataType struct {
	Classifier
}

// NewDataType creates a data type at (x, y).
func NewDataType(name string, x, y float64) *DataType {
	return &DataType{Classifier: newClassifier(name, x, y)}
}

func (d *DataType) Tag() string { return TagDataType }

func (d *DataType) Clone() Element {
	return &DataType{Classifier: d.cloneClassifier()}
}

func (d *DataType) CopyFrom(other Element) error {
	o, ok := other.(*DataType)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s onto %s", ErrTypeMismatch, other.Tag(), d.Tag())
	}
	d.copyClassifier(&o.Classifier)
	return nil
}

func (d *DataType) ToSerializable() Record {
	return d.toRecord(TagDataType)
}

// DecodeDataType builds a DataType from its record.
func DecodeDataType(rec Record, _ []Element) (Element, error) {
	d := &DataType{}
	if err := d.readClassifier(NewRecordReader(rec)); err != nil {
		return nil, err
	}
	return d, nil
}
